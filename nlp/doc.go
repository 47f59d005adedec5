// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package nlp provides abstractions for the annotation engines used in corpora.
//
// This package defines the contract between the indexing pipeline and a
// linguistic annotation engine, together with the binary codec that stores
// annotations inside index records. Engines live in subpackages:
//
//   - basic: rule-based sentence and token segmentation, no external service
//   - openai: part-of-speech, lemma and entity tagging through an
//     OpenAI-compatible chat endpoint
//   - mock: test doubles
//
// # Design Principles
//
// The package is designed around two interfaces:
//
//   - Annotator: Produces a core.Annotation for a document's text
//   - Provider: Aggregates an Annotator with the codec that persists its output
//
// # Usage
//
//	cfg := nlp.NewConfig(
//	    nlp.WithHost("http://localhost:11434/v1"),
//	    nlp.WithModel("qwen2.5:3b"),
//	)
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	ann, err := provider.Annotator().Annotate(ctx, text)
//
// # Thread Safety
//
// All implementations must be safe for concurrent use; the indexing
// pipeline may annotate several documents at once.
package nlp
