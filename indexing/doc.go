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

// Package indexing drives a corpus into an index store.
//
// An Indexer pulls documents from a corpus.Parser until it is exhausted,
// optionally annotates each one through an nlp.Provider, converts it to an
// index record and appends it to a single storage.IndexWriter. After the
// last document the index is force merged and closed.
//
// # Failure Semantics
//
// Any parse, annotation or store failure aborts the run. Nothing is rolled
// back; re-running with IndexOptions.Append is the recovery path.
//
// # Concurrency
//
// By default the run is strictly sequential. WithWorkers annotates several
// documents at once on an ants pool, but only the goroutine that called
// Index touches the writer, and documents are committed in parse order.
//
// Basic usage:
//
//	ix, err := indexing.NewIndexer(parser, "/data/index",
//	    indexing.WithProvider(basic.NewProvider()),
//	)
//	stats, err := ix.Index(ctx, indexing.IndexOptions{RunNLP: true, StorePostings: true})
package indexing
