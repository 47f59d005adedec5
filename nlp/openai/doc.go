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

// Package openai provides an annotation engine backed by an OpenAI-compatible
// chat API.
//
// Text is segmented into sentences and tokens by the basic engine, then the
// token lists are sent to a language model which returns a lemma, a Penn
// Treebank part-of-speech tag and a named-entity label for each token. The
// langchaingo library handles the transport, so any OpenAI-compatible
// service (Ollama, LocalAI, vLLM) can be used.
//
// # Usage
//
//	cfg := nlp.NewConfig(
//	    nlp.WithEngine(nlp.EngineOpenAI),
//	    nlp.WithHost("http://localhost:11434"),  // /v1 added automatically
//	    nlp.WithModel("qwen2.5:3b"),
//	)
//
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	ann, err := provider.Annotator().Annotate(ctx, "Chirac spoke in Paris.")
package openai
