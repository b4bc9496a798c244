// Package analytics computes accuracy and timing rollups over the full
// session history. Everything here is a pure reduction: no input is
// mutated and recomputing on every view is safe.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/jatin/qlock/internal/session"
)

const (
	// WeakAccuracyThreshold flags topics below this accuracy percentage.
	WeakAccuracyThreshold = 60
	// WeakMinQuestions is the minimum attempted questions before a topic
	// can be flagged weak; fewer carry too little signal.
	WeakMinQuestions = 5
	// TrendWindow is the attempt count per trend comparison window.
	TrendWindow = 5

	recentDays = 7
	dailyDays  = 30
)

// SubtopicStats is the per-subtopic breakdown within a topic.
type SubtopicStats struct {
	Subtopic       string
	TotalQuestions int
	Correct        int
	Accuracy       int
}

// TopicStats is the rollup for one topic.
type TopicStats struct {
	Topic          string
	Attempts       int
	TotalQuestions int
	Correct        int
	Incorrect      int
	Skipped        int
	Timeout        int
	Accuracy       int // 0-100
	AvgTime        int // seconds per question
	Trend          int // percentage-point change across attempt windows
	Weak           bool
	Subtopics      []SubtopicStats
}

// DayActivity is one day's practice volume.
type DayActivity struct {
	Attempts  int
	Questions int
}

// Report is the aggregate over all sessions and attempts.
type Report struct {
	TotalSessions  int
	TotalAttempts  int
	TotalQuestions int
	Correct        int
	Incorrect      int
	Skipped        int
	Timeout        int
	Accuracy       int
	TotalTimeSpent int
	AvgTime        int
	RecentAccuracy int // last 7 days
	RecentAttempts int
	CurrentStreak  int // consecutive practice days ending now
	MaxStreak      int
	Topics         []TopicStats
	WeakTopics     []string
	Daily          map[string]DayActivity // keyed YYYY-MM-DD, last 30 days
}

type attemptRef struct {
	date    time.Time
	results []session.Result
}

// Calculate reduces the session list to a report. The reference time is
// injected so recency windows and streaks are deterministic under test.
func Calculate(sessions []session.Session, now time.Time) Report {
	r := Report{
		TotalSessions: len(sessions),
		Daily:         make(map[string]DayActivity),
	}

	var allAttempts []attemptRef
	byTopic := make(map[string][]attemptRef)
	bySub := make(map[string]map[string][]session.Result)
	topicOrder := []string{}

	for _, s := range sessions {
		topic := s.Topic
		if topic == "" {
			topic = "Untitled"
		}
		if _, seen := byTopic[topic]; !seen {
			topicOrder = append(topicOrder, topic)
		}
		for _, a := range s.Attempts {
			ref := attemptRef{date: a.Date, results: a.Results}
			allAttempts = append(allAttempts, ref)
			byTopic[topic] = append(byTopic[topic], ref)
			if s.Subtopic != "" {
				if bySub[topic] == nil {
					bySub[topic] = make(map[string][]session.Result)
				}
				bySub[topic][s.Subtopic] = append(bySub[topic][s.Subtopic], a.Results...)
			}
		}
	}

	r.TotalAttempts = len(allAttempts)
	for _, a := range allAttempts {
		for _, res := range a.results {
			r.TotalQuestions++
			r.TotalTimeSpent += res.TimeTaken
			switch res.Status {
			case session.StatusCorrect:
				r.Correct++
			case session.StatusIncorrect:
				r.Incorrect++
			case session.StatusSkipped:
				r.Skipped++
			case session.StatusTimeout:
				r.Timeout++
			}
		}
	}
	r.Accuracy = percent(r.Correct, r.TotalQuestions)
	if r.TotalQuestions > 0 {
		r.AvgTime = int(math.Round(float64(r.TotalTimeSpent) / float64(r.TotalQuestions)))
	}

	// Recency window.
	cutoff := now.AddDate(0, 0, -recentDays)
	recentCorrect, recentTotal := 0, 0
	for _, a := range allAttempts {
		if !a.date.After(cutoff) {
			continue
		}
		r.RecentAttempts++
		for _, res := range a.results {
			recentTotal++
			if res.Status == session.StatusCorrect {
				recentCorrect++
			}
		}
	}
	r.RecentAccuracy = percent(recentCorrect, recentTotal)

	// Per-topic rollups.
	for _, topic := range topicOrder {
		attempts := byTopic[topic]
		ts := TopicStats{Topic: topic, Attempts: len(attempts)}
		timeSpent := 0
		for _, a := range attempts {
			for _, res := range a.results {
				ts.TotalQuestions++
				timeSpent += res.TimeTaken
				switch res.Status {
				case session.StatusCorrect:
					ts.Correct++
				case session.StatusIncorrect:
					ts.Incorrect++
				case session.StatusSkipped:
					ts.Skipped++
				case session.StatusTimeout:
					ts.Timeout++
				}
			}
		}
		ts.Accuracy = percent(ts.Correct, ts.TotalQuestions)
		if ts.TotalQuestions > 0 {
			ts.AvgTime = int(math.Round(float64(timeSpent) / float64(ts.TotalQuestions)))
		}
		ts.Trend = trend(attempts)
		ts.Weak = ts.Accuracy < WeakAccuracyThreshold && ts.TotalQuestions >= WeakMinQuestions
		if ts.Weak {
			r.WeakTopics = append(r.WeakTopics, topic)
		}

		for sub, results := range bySub[topic] {
			ss := SubtopicStats{Subtopic: sub}
			for _, res := range results {
				ss.TotalQuestions++
				if res.Status == session.StatusCorrect {
					ss.Correct++
				}
			}
			ss.Accuracy = percent(ss.Correct, ss.TotalQuestions)
			ts.Subtopics = append(ts.Subtopics, ss)
		}
		sort.Slice(ts.Subtopics, func(i, j int) bool {
			return ts.Subtopics[i].Subtopic < ts.Subtopics[j].Subtopic
		})

		r.Topics = append(r.Topics, ts)
	}
	sort.SliceStable(r.Topics, func(i, j int) bool {
		if r.Topics[i].TotalQuestions != r.Topics[j].TotalQuestions {
			return r.Topics[i].TotalQuestions > r.Topics[j].TotalQuestions
		}
		return r.Topics[i].Topic < r.Topics[j].Topic
	})

	// Daily activity and streaks over the last 30 days.
	dayCutoff := now.AddDate(0, 0, -dailyDays)
	for _, a := range allAttempts {
		if !a.date.After(dayCutoff) {
			continue
		}
		key := a.date.Format("2006-01-02")
		day := r.Daily[key]
		day.Attempts++
		day.Questions += len(a.results)
		r.Daily[key] = day
	}
	r.CurrentStreak, r.MaxStreak = streaks(r.Daily, now)

	return r
}

// percent rounds correct/total to a whole percentage; zero total yields
// zero rather than dividing by zero.
func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// trend compares the mean accuracy of the most recent up-to-5 attempts
// against the preceding up-to-5. Windows are attempt-level: each
// attempt contributes its own accuracy, not its pooled questions. Both
// windows must be non-empty, otherwise the trend is 0.
func trend(attempts []attemptRef) int {
	if len(attempts) < 2 {
		return 0
	}
	ordered := append([]attemptRef(nil), attempts...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].date.Before(ordered[j].date)
	})

	split := len(ordered) - TrendWindow
	if split < 0 {
		split = 0
	}
	recent := ordered[split:]
	prevStart := split - TrendWindow
	if prevStart < 0 {
		prevStart = 0
	}
	previous := ordered[prevStart:split]
	if len(previous) == 0 || len(recent) == 0 {
		return 0
	}

	return int(math.Round(meanAccuracy(recent) - meanAccuracy(previous)))
}

func meanAccuracy(attempts []attemptRef) float64 {
	sum := 0.0
	for _, a := range attempts {
		correct, total := 0, 0
		for _, res := range a.results {
			total++
			if res.Status == session.StatusCorrect {
				correct++
			}
		}
		if total > 0 {
			sum += float64(correct) / float64(total) * 100
		}
	}
	return sum / float64(len(attempts))
}

// streaks derives the current and longest consecutive-day practice runs
// from the daily activity map. A missing today does not break the
// current streak; any earlier gap does.
func streaks(daily map[string]DayActivity, now time.Time) (current, max int) {
	today := now.Format("2006-01-02")
	for i := 0; i < dailyDays; i++ {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		if _, ok := daily[key]; ok {
			current++
		} else if key != today {
			break
		}
	}

	dates := make([]string, 0, len(daily))
	for d := range daily {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	run := 0
	var prev time.Time
	for i, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			continue
		}
		if i > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > max {
			max = run
		}
		prev = t
	}
	return current, max
}
