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

// Package search provides ranked search over the stored topic corpus.
//
// The Ranker scores every stored topic against a query through a
// pluggable Scorer, keeps only positive scores, and returns the top
// results in descending score order. Scoring strategies range from the
// placeholder ConstantScorer to keyword matching via WordMatchScorer;
// callers can supply their own.
package search
