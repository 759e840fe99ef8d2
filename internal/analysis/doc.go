// Package analysis derives flight statistics from a simulated trajectory.
//
//   - [Analyze]: range, apex, ascent and descent times, impact velocity
//   - [Efficiency]: range as a fraction of the drag-free range
//
// Drag makes the descent longer than the ascent:
//
//	st := analysis.Analyze(tr)
//	if st.Asymmetry() > 1 {
//	    // descent took longer than the climb
//	}
package analysis
