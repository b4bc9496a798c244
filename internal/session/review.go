package session

import "fmt"

// ReviewStatus is the per-item state during the answer-key review pass.
// It adds "pending" to the terminal statuses; Finalize removes it.
type ReviewStatus string

const (
	ReviewPending   ReviewStatus = "pending"
	ReviewCorrect   ReviewStatus = "correct"
	ReviewIncorrect ReviewStatus = "incorrect"
	ReviewSkipped   ReviewStatus = "skipped"
	ReviewTimeout   ReviewStatus = "timeout"
)

// ReviewItem pairs a raw result with its review-phase status. Only
// items whose raw status is done are markable.
type ReviewItem struct {
	Raw    RawResult
	Status ReviewStatus
}

// Review reconciles the raw timed-phase outcomes against an external
// answer key. Correctness is purely a human judgment: it is never
// inferred, and only a done item explicitly marked by the user can end
// up correct or incorrect.
type Review struct {
	Items []ReviewItem
}

// NewReview seeds the review pass: done becomes pending, skipped and
// timeout pass through unchanged and are not user-editable.
func NewReview(raw []RawResult) *Review {
	items := make([]ReviewItem, len(raw))
	for i, r := range raw {
		status := ReviewPending
		switch r.Status {
		case RawSkipped:
			status = ReviewSkipped
		case RawTimeout:
			status = ReviewTimeout
		}
		items[i] = ReviewItem{Raw: r, Status: status}
	}
	return &Review{Items: items}
}

// Mark sets the correctness of item i. Remarking is allowed until
// finalize; last mark wins. Items that were skipped or timed out cannot
// be marked.
func (r *Review) Mark(i int, correct bool) error {
	if i < 0 || i >= len(r.Items) {
		return fmt.Errorf("review index %d out of range", i)
	}
	if r.Items[i].Raw.Status != RawDone {
		return fmt.Errorf("result %q is %s and cannot be marked", r.Items[i].Raw.Identifier, r.Items[i].Raw.Status)
	}
	if correct {
		r.Items[i].Status = ReviewCorrect
	} else {
		r.Items[i].Status = ReviewIncorrect
	}
	return nil
}

// Markable reports whether item i accepts correctness marks.
func (r *Review) Markable(i int) bool {
	return i >= 0 && i < len(r.Items) && r.Items[i].Raw.Status == RawDone
}

// PendingCount returns the number of unmarked done items. When it is
// non-zero at submit time the caller must warn and require explicit
// confirmation before finalizing.
func (r *Review) PendingCount() int {
	n := 0
	for _, item := range r.Items {
		if item.Status == ReviewPending {
			n++
		}
	}
	return n
}

// ReviewCounts tallies items by review status for the stats bar.
type ReviewCounts struct {
	Correct   int
	Incorrect int
	Pending   int
	Skipped   int
	Timeout   int
}

// Counts returns the current tally.
func (r *Review) Counts() ReviewCounts {
	var c ReviewCounts
	for _, item := range r.Items {
		switch item.Status {
		case ReviewCorrect:
			c.Correct++
		case ReviewIncorrect:
			c.Incorrect++
		case ReviewPending:
			c.Pending++
		case ReviewSkipped:
			c.Skipped++
		case ReviewTimeout:
			c.Timeout++
		}
	}
	return c
}

// Finalize produces the terminal results: any remaining pending item is
// coerced to skipped. The output order matches the practice order.
func (r *Review) Finalize() []Result {
	results := make([]Result, len(r.Items))
	for i, item := range r.Items {
		status := StatusSkipped
		switch item.Status {
		case ReviewCorrect:
			status = StatusCorrect
		case ReviewIncorrect:
			status = StatusIncorrect
		case ReviewTimeout:
			status = StatusTimeout
		case ReviewSkipped, ReviewPending:
			status = StatusSkipped
		}
		results[i] = Result{
			QuestionID:   item.Raw.QuestionID,
			Identifier:   item.Raw.Identifier,
			Status:       status,
			TimeTaken:    item.Raw.TimeTaken,
			TotalTime:    item.Raw.TotalTime,
			UserAnswer:   item.Raw.UserAnswer,
			QuestionType: item.Raw.QuestionType,
		}
	}
	return results
}
