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

// Package ai defines the answer-generation abstraction used by the
// retrieval pipeline.
//
// The pipeline hands an Answerer the assembled sector context together
// with the student's question and receives back a natural-language
// answer. Implementations live in subpackages:
//
//   - ai/openai: OpenAI-compatible chat APIs via langchaingo
//   - ai/mock: test doubles with injectable behavior
//
// The pipeline never inspects how an answer was produced; it only
// requires that Answer returns text or an error.
package ai
