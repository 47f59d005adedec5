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

// Package mock provides test doubles for the nlp package.
//
// # Usage
//
//	provider := mock.NewMockProvider()
//	annotator := provider.(*mock.MockProvider).GetMockAnnotator()
//	annotator.AnnotateFunc = func(ctx context.Context, text string) (*core.Annotation, error) {
//	    return nil, errors.New("engine down")
//	}
//
//	// Check call counts
//	count := annotator.CallCount()
//
// # Default Behavior
//
//   - MockAnnotator: One sentence per line of text, tokens split on whitespace,
//     lemma is the lowercased word
//   - MockProvider: Aggregates a MockAnnotator with the MUS codec
package mock
