// Package components provides the standard component families used to build
// model functions: peak shapes (Gaussian, Lorentzian), backgrounds (Offset,
// Polynomial, PowerLaw) and decays (Exponential).
//
// Every family implements model.Component and model.Cloneable, evaluates
// with the live parameter values on each call, and declares whether it is
// linear in its free parameters so the model can pick the direct linear
// solver. Custom components only need to satisfy model.Component; nothing in
// this package is special-cased.
package components
