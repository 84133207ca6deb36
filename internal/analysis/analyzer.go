package analysis

import (
	"context"
	"time"

	"aura/backend/internal/config"
	"aura/backend/internal/models"

	"go.uber.org/zap"
)

// RemoteClient completes a single prompt against a language model.
type RemoteClient interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Analyzer produces a TriageResult for every complaint, preferring the remote
// model and falling back to the keyword classifier on any failure.
type Analyzer struct {
	cfg        config.AnalysisConfig
	remote     RemoteClient
	classifier *Classifier
	log        *zap.SugaredLogger
}

// NewAnalyzer wires an orchestrator. remote may be nil, in which case only the
// classifier is used.
func NewAnalyzer(cfg config.AnalysisConfig, remote RemoteClient, classifier *Classifier, log *zap.SugaredLogger) *Analyzer {
	if classifier == nil {
		classifier = NewClassifier()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultAnalysisTimeout
	}
	return &Analyzer{cfg: cfg, remote: remote, classifier: classifier, log: log}
}

// RemoteEnabled reports whether AnalyzeComplaint will try the remote model.
func (a *Analyzer) RemoteEnabled() bool {
	return a.remote != nil && a.cfg.RemoteReady()
}

// AnalyzeComplaint always returns a complete TriageResult. The remote model is
// tried exactly once; the call is bounded by the configured timeout and is not
// aborted when the caller's context is cancelled.
func (a *Analyzer) AnalyzeComplaint(ctx context.Context, description, propertyName string) models.TriageResult {
	if !a.RemoteEnabled() {
		return a.classifier.Classify(description, propertyName)
	}

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Timeout)
	defer cancel()

	started := time.Now()
	text, err := a.remote.Complete(callCtx, systemPrompt, buildPrompt(description, propertyName))
	if err != nil {
		a.log.Warnw("Remote analysis failed, using keyword classifier",
			"error", err, "elapsed", time.Since(started))
		return a.classifier.Classify(description, propertyName)
	}

	payload, err := decodePayload(text)
	if err != nil {
		a.log.Warnw("Remote analysis returned unparseable output, using keyword classifier",
			"error", err, "response_len", len(text))
		return a.classifier.Classify(description, propertyName)
	}

	result, err := project(payload, description, propertyName)
	if err != nil {
		a.log.Warnw("Remote analysis incomplete, using keyword classifier", "error", err)
		return a.classifier.Classify(description, propertyName)
	}

	a.log.Debugw("Remote analysis complete",
		"category", result.Category, "priority", result.Priority, "elapsed", time.Since(started))
	return result
}
