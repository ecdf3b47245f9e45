// Package viz renders fuzzy controllers in the terminal.
//
//   - [PlotMemberships]: membership curves of one input, via asciigraph
//   - [PlotSeries]: a single numeric series such as a sweep or a run column
//   - [DegreeTable]: current degree of every category with a bar
//   - [App]: Bubble Tea program that moves inputs and shows the output live
//
// # Key Bindings
//
//	←/→ or h/l  - Decrease/increase the selected input
//	↑/↓ or k/j  - Select input
//	[/]         - Halve/double the step size
//	T           - Cycle color themes
//	Q           - Quit
package viz
