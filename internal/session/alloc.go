package session

// ResolveQuestionTimes computes the per-question second budgets for a
// practice run, one entry per question, aligned by index. Budgets are
// frozen at practice start; later edits to the session do not affect an
// in-flight run.
//
// Total mode uses integer division and silently drops the remainder.
// The caller must guarantee at least one question.
func ResolveQuestionTimes(s Session) []int {
	times := make([]int, len(s.Questions))
	switch s.TimerMode {
	case ModeIndividual:
		for i, q := range s.Questions {
			if q.Time > 0 {
				times[i] = q.Time
			} else {
				times[i] = s.TimePerQuestion
			}
		}
	case ModeTotal:
		perQuestion := s.TotalTime / len(s.Questions)
		for i := range times {
			times[i] = perQuestion
		}
	default: // ModeUniform
		for i := range times {
			times[i] = s.TimePerQuestion
		}
	}
	return times
}
