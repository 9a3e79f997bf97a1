// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one draft cycle: load the queue, pop the first
// topic, generate an article, write it, and persist the rest of the queue.
//
// The queue is persisted only after the draft is written, so a failed
// generation leaves the topic at the front for the next run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akhsjain/tech-blogs/internal/draft"
	"github.com/akhsjain/tech-blogs/internal/queue"
	"github.com/akhsjain/tech-blogs/pkg/types"
)

// ErrBlankTopic is returned when the topic at the front of the queue is
// empty or whitespace. The queue is left unchanged.
var ErrBlankTopic = errors.New("topic at front of queue is blank")

// Generator produces article text for a topic.
type Generator interface {
	Generate(ctx context.Context, topic types.Topic) (string, error)
}

// DraftWriter persists a draft file.
type DraftWriter interface {
	WriteDraft(path, content string) error
}

// Recorder appends a draft to the history ledger.
type Recorder interface {
	Record(ctx context.Context, rec types.DraftRecord) error
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	// NoOp means the queue was empty; nothing was generated or written.
	NoOp Outcome = iota
	// Created means a draft was written and the queue shrank by one.
	Created
)

func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "no-op"
	case Created:
		return "created"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result describes a finished run.
type Result struct {
	Outcome Outcome
	RunID   string
	Draft   types.Draft

	// Remaining is the persisted queue after a Created run.
	Remaining []types.Topic
}

// Runner wires the collaborators of a run.
type Runner struct {
	Queue     queue.Store
	Generator Generator
	Drafts    DraftWriter
	DraftsDir string

	// History is optional. Ledger failures are logged and do not change
	// the outcome.
	History  Recorder
	Provider types.Provider
	Model    string

	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Run executes one cycle. It returns a NoOp result with a nil error when
// the queue is empty. Generation failures are *types.GenerationError and
// storage failures are *types.StorageError.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	log := r.logger()
	res := Result{RunID: uuid.NewString()}
	log = log.With("run_id", res.RunID)

	topics, err := r.Queue.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("loading queue: %w", err)
	}
	log.Debug("queue loaded", "size", len(topics))

	topic, rest, err := queue.PopFirst(topics)
	if errors.Is(err, queue.ErrEmpty) {
		log.Info("no topics left")
		res.Outcome = NoOp
		return res, nil
	}
	if strings.TrimSpace(topic) == "" {
		return res, ErrBlankTopic
	}
	log = log.With("topic", topic)
	log.Info("generating draft", "remaining", len(rest))

	content, err := r.Generator.Generate(ctx, topic)
	if err != nil {
		return res, fmt.Errorf("generating draft for %q: %w", topic, err)
	}

	path := draft.FileName(r.DraftsDir, topic, r.now())
	if err := r.Drafts.WriteDraft(path, content); err != nil {
		return res, fmt.Errorf("writing draft: %w", err)
	}
	res.Draft = types.Draft{Topic: topic, Path: path, Content: content}
	log.Info("draft written", "path", path, "bytes", len(content))

	// The draft stays on disk if this fails; the topic is regenerated on
	// the next run under that day's name.
	if err := r.Queue.Persist(ctx, rest); err != nil {
		return res, fmt.Errorf("persisting queue (draft kept at %s): %w", path, err)
	}
	log.Debug("queue persisted", "size", len(rest))

	res.Outcome = Created
	res.Remaining = rest
	r.record(ctx, log, res)
	return res, nil
}

func (r *Runner) record(ctx context.Context, log *slog.Logger, res Result) {
	if r.History == nil {
		return
	}
	rec := types.DraftRecord{
		ID:        res.RunID,
		Topic:     res.Draft.Topic,
		Slug:      draft.Slug(res.Draft.Topic),
		Path:      res.Draft.Path,
		Provider:  r.Provider,
		Model:     r.Model,
		Bytes:     len(res.Draft.Content),
		CreatedAt: r.now().UTC(),
	}
	if err := r.History.Record(ctx, rec); err != nil {
		log.Warn("recording draft history failed", "error", err)
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}
