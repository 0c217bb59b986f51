// Copyright 2026 Google LLC
// SPDX-License-Identifier: Apache-2.0

// Package embedding is a thin wrapper over a text embedding model,
// exposing exactly the two operations the typosquat similarity filter
// needs: Embed(text) -> vector and Cosine(v1, v2) -> float. Callers treat
// a zero-norm vector as "the model has no coverage for this text" and
// fall back to edit distance; this package only reports the norm, the
// fallback decision itself belongs to the caller.
package embedding

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini embedding model used unless overridden.
const DefaultModel = "text-embedding-005"

// Embedder produces a vector embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) (Vector, error)
}

// Vector is a dense embedding. A Vector with zero Norm signals the model
// had no coverage for the input text (e.g. empty input, or a model that
// recognized no tokens).
type Vector []float32

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += float64(x) * float64(x)
	}
	return math.Sqrt(sumSq)
}

// Cosine returns the cosine similarity between a and b. It is undefined
// (and returns 0) if either vector has zero norm; callers are expected to
// check Norm() before relying on this result.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 || len(a) != len(b) {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (na * nb)
}

// GenAIEmbedder embeds text using the Gemini embedding endpoint.
type GenAIEmbedder struct {
	Client *genai.Client
	Model  string
}

// NewGenAIEmbedder constructs a GenAIEmbedder for the given GCP project,
// following the same Vertex AI backend configuration used throughout this
// codebase's other generative-AI call sites.
func NewGenAIEmbedder(ctx context.Context, project, location string) (*GenAIEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}
	return &GenAIEmbedder{Client: client, Model: DefaultModel}, nil
}

// Embed returns the embedding vector for text. An empty or whitespace-only
// text is never passed here by the similarity filter (spec.md §4.5 handles
// that case before reaching the model), but Embed still returns a
// zero-length vector for it rather than calling the API.
func (e *GenAIEmbedder) Embed(ctx context.Context, text string) (Vector, error) {
	if strings.TrimSpace(text) == "" {
		return Vector{}, nil
	}
	model := e.Model
	if model == "" {
		model = DefaultModel
	}
	resp, err := e.Client.Models.EmbedContent(ctx, model, []*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "embedding text %q", text)
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return Vector{}, nil
	}
	return Vector(resp.Embeddings[0].Values), nil
}

var _ Embedder = &GenAIEmbedder{}
