package search

import "github.com/studiolore/studyhall/core"

// RankMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps during a search.
type RankMonitor interface {
	Start(query string)
	AfterScan(topicCount int)
	TopicScored(topic *core.Topic, score float64)
	TopicExcluded(topic *core.Topic)
	Finish(results []core.SearchResult)
}

// noopMonitor is a no-op implementation of RankMonitor
type noopMonitor struct{}

var _ RankMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                        {}
func (n *noopMonitor) AfterScan(_ int)                       {}
func (n *noopMonitor) TopicScored(_ *core.Topic, _ float64)  {}
func (n *noopMonitor) TopicExcluded(_ *core.Topic)           {}
func (n *noopMonitor) Finish(_ []core.SearchResult)          {}
