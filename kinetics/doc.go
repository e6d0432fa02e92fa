// Package kinetics turns a kinetic rate law and a temperature history into the
// transform matrix of a first-order, multi-parallel-reaction model.
//
// 🚀 What does it compute?
//
//	For a grid of activation energies E_j and a sampled ramp (t_i, T_i), every
//	column j of the transform matrix A holds the fraction of a unit mass at E_j
//	still unreacted at each sample time:
//
//	  A[i,j] = exp(-ψ_j(t_i)),   ψ_j(t_i) = ∫_{t_0}^{t_i} k(E_j, T(t)) dt
//
//	with ψ integrated by the cumulative trapezoid rule on the supplied samples.
//	Row 0 is therefore all ones and every column is non-increasing in time.
//
// ✨ Rate laws:
//   - Arrhenius: k = 10^{log10k0} · exp(-E·1000 / (R·T)), E in kJ/mol, T in K.
//   - The pre-exponential factor is a tagged variant (Constant, PerGrid, Func)
//     resolved once per build into one value per grid column.
//
// ⚙️ Usage:
//
//	law := kinetics.Arrhenius{Log10K0: kinetics.Constant(10)}
//	A, warns, err := kinetics.BuildTransform(law, grid, t, T)
//
// Isothermal input is accepted but reported as a core.WarnIsothermal warning,
// since the model family assumes a temperature ramp.
package kinetics
