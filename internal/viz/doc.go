// Package viz renders projectile results in the terminal.
//
//   - [ComparisonTable]: lipgloss table of labelled scenarios
//   - [PlotTrajectories]: Braille x/y plot on a shared scale
//   - [RangeCurve] and [HeightProfiles]: asciigraph line charts
//   - [Report]: titled box of flight statistics
//
// Colours come from a [Theme]; see [ThemeNames] for the built-in ones.
package viz
