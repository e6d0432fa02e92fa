package model_test

import (
	"fmt"

	"github.com/katalvlaran/daemkit/core"
	"github.com/katalvlaran/daemkit/model"
)

func ExampleDaemFromRateData() {
	grid, _ := core.Linspace(100, 250, 16)
	m, err := model.DaemFromRateData(grid, model.DefaultRateDataParams())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("nt=%d nk=%d kind=%s warnings=%d\n", m.NT(), m.NK(), m.Kind(), len(m.Warnings()))
	// Output: nt=250 nk=16 kind=synthetic warnings=0
}
