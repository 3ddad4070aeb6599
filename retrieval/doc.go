// Copyright 2026 Studiolore
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

// Package retrieval implements the staleness-aware content pipeline.
//
// A content request flows through the Retriever in stages: decide
// whether the stored topic is fresh enough, refresh it from the
// external source if not, re-read the store, enrich the context with
// cached academic summaries, and hand the assembled context to the
// answerer. Refresh and enrichment failures degrade gracefully; the
// pipeline always produces an answer.
package retrieval
