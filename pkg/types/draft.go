// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Topic names an article subject. It is the unit of work for one run.
type Topic = string

// Draft is the generated article for one topic.
type Draft struct {
	// Topic is the subject the draft was generated for.
	Topic Topic `json:"topic" yaml:"topic"`

	// Path is where the draft was written: <dir>/<date>-<slug>.md.
	Path string `json:"path" yaml:"path"`

	// Content is the generated text, verbatim.
	Content string `json:"-" yaml:"-"`
}

// DraftRecord is one row of the draft history ledger.
type DraftRecord struct {
	// ID is a random UUID assigned when the run starts.
	ID string `json:"id" yaml:"id"`

	// Topic is the subject the draft was generated for.
	Topic Topic `json:"topic" yaml:"topic"`

	// Slug is the normalized, file-name-safe form of Topic.
	Slug string `json:"slug" yaml:"slug"`

	// Path is the draft file that was written.
	Path string `json:"path" yaml:"path"`

	// Provider and Model identify the service that wrote the draft.
	Provider Provider `json:"provider" yaml:"provider"`
	Model    string   `json:"model" yaml:"model"`

	// Bytes is the size of the draft content.
	Bytes int `json:"bytes" yaml:"bytes"`

	// CreatedAt is when the draft was recorded, in UTC.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
