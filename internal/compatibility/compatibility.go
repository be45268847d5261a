// Package compatibility obtains species-compatibility verdicts from an
// external classifier, degrading to a configured conservative default
// whenever the classifier cannot answer.
package compatibility

import (
	"context"
	"fmt"
	"time"

	"github.com/Skippy-iskipi/AquaSync-Project-sub006/internal/domain"
)

// Classifier judges whether a set of species can share a tank.
// Implementations are expected to be remote and therefore unreliable.
type Classifier interface {
	Classify(ctx context.Context, species []string) (domain.CompatibilityVerdict, error)
}

// DefaultTimeout bounds a single classifier call.
const DefaultTimeout = 3 * time.Second

// Judge wraps a Classifier so that planning always receives a verdict.
// A missing, slow, failing, or nonsensical classifier yields the
// fallback status instead of an error.
type Judge struct {
	classifier Classifier
	timeout    time.Duration
	fallback   domain.CompatibilityStatus
}

// NewJudge builds a judge. A nil classifier is allowed and always
// produces the fallback. Non-positive timeouts use DefaultTimeout; an
// empty fallback defaults to compatible-with-condition, the
// conservative choice for an unknown pairing.
func NewJudge(classifier Classifier, timeout time.Duration, fallback domain.CompatibilityStatus) *Judge {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if fallback == "" {
		fallback = domain.CompatibilityConditional
	}
	return &Judge{classifier: classifier, timeout: timeout, fallback: fallback}
}

// Verdict classifies the species set. Selections of fewer than two
// species are trivially compatible and never reach the classifier.
func (j *Judge) Verdict(ctx context.Context, species []string) domain.CompatibilityVerdict {
	if len(species) < 2 {
		return domain.CompatibilityVerdict{Status: domain.CompatibilityCompatible}
	}
	if j.classifier == nil {
		return j.fallbackVerdict("no compatibility classifier configured")
	}

	classifyCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	verdict, err := j.classifier.Classify(classifyCtx, species)
	if err != nil {
		return j.fallbackVerdict(fmt.Sprintf("compatibility classifier unavailable: %v", err))
	}
	if _, ok := ParseStatus(string(verdict.Status)); !ok {
		return j.fallbackVerdict(fmt.Sprintf("compatibility classifier returned unknown status %q", verdict.Status))
	}
	return verdict
}

func (j *Judge) fallbackVerdict(reason string) domain.CompatibilityVerdict {
	return domain.CompatibilityVerdict{
		Status: j.fallback,
		Issues: []string{reason},
	}
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (domain.CompatibilityStatus, bool) {
	switch domain.CompatibilityStatus(s) {
	case domain.CompatibilityCompatible:
		return domain.CompatibilityCompatible, true
	case domain.CompatibilityConditional:
		return domain.CompatibilityConditional, true
	case domain.CompatibilityIncompatible:
		return domain.CompatibilityIncompatible, true
	default:
		return "", false
	}
}
