package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// snippetLimit caps the content length returned per search hit.
const snippetLimit = 200

type contentRequest struct {
	Question    string `json:"question"`
	Sector      string `json:"sector"`
	OfflineMode bool   `json:"offline_mode"`
}

type contentResponse struct {
	Answer string  `json:"answer"`
	Link   *string `json:"link"`
}

type searchRequest struct {
	Query       string          `json:"query"`
	Preferences json.RawMessage `json:"preferences"`
}

type searchHit struct {
	Sector  string  `json:"sector"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

func (s *Server) handleTopicContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	answer := s.content.TopicContent(r.Context(), req.Question, req.Sector, req.OfflineMode)

	resp := contentResponse{Answer: answer.Text}
	if answer.Link != "" {
		resp.Link = &answer.Link
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query required", http.StatusBadRequest)
		return
	}

	if s.recorder != nil {
		if err := s.recorder.RecordSearch(req.Query); err != nil {
			s.logger.Warn("failed to journal search", "err", err)
		}
	}

	// An explicit JSON null decodes to the literal "null"; treat it the
	// same as an omitted field.
	prefs := req.Preferences
	if string(prefs) == "null" {
		prefs = nil
	}

	results, err := s.searcher.Rank(r.Context(), req.Query, prefs)
	if err != nil {
		// Search failures degrade to an empty result set.
		s.logger.Error("search failed", "query", req.Query, "err", err)
		writeJSON(w, http.StatusOK, []searchHit{})
		return
	}

	hits := make([]searchHit, 0, len(results))
	for _, result := range results {
		hits = append(hits, searchHit{
			Sector:  result.Sector,
			Content: snippet(result.Content),
			Score:   result.Score,
		})
	}
	writeJSON(w, http.StatusOK, hits)
}

// snippet truncates content to snippetLimit characters, appending an
// ellipsis when anything was cut.
func snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= snippetLimit {
		return content
	}
	return string(runes[:snippetLimit]) + "..."
}
