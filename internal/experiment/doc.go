// Package experiment orchestrates the engines into complete runs and the
// analyses built on top of them.
//
//   - [Pipeline]: weather → crop → soil water → {emergence, monthly → carbon}
//   - [Calibrate]: grid search of one crop parameter against observations
//   - [Sensitivity]: one-at-a-time ±span analysis of final biomass
//   - [Agrivoltaic], [RunScenario]: paired baseline and modified runs
//   - [Ensemble]: independent seeds in parallel
package experiment
