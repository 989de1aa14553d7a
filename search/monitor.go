package search

import "github.com/IliasHad/edit-mind-sub003/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query SceneQuery)
	AfterFieldSearch(field, term string, candidates []*core.Candidate)
	Finish(scenes []*core.Scene)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ SceneQuery)                                   {}
func (n *noopMonitor) AfterFieldSearch(_, _ string, _ []*core.Candidate)    {}
func (n *noopMonitor) Finish(_ []*core.Scene)                               {}
