package tree

import (
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
)

// Builder links transformed comments into threads. It runs once all comments
// exist, since a reply can be processed before its parent.
type Builder struct {
	logger providers.Logger
}

func NewBuilder(logger providers.Logger) *Builder {
	return &Builder{logger: logger}
}

// Link resolves parent references in processing order. Unknown parents are
// dropped and reported; the reply becomes a root. ancestorIDs are ordered
// nearest parent first, root last.
func (b *Builder) Link(comments []*models.Comment, index map[string]*models.Comment) ([]*models.DanglingReference, error) {
	var dangling []*models.DanglingReference

	// first settle which parent links survive, so ancestor walks only see resolved links
	for _, c := range comments {
		if c.ParentID == "" {
			continue
		}
		if _, ok := index[c.ParentID]; !ok {
			d := &models.DanglingReference{Entity: "comment", RecordID: c.ID, Field: "parent_id", Target: "comment " + c.ParentID}
			b.logger.Warnf(providers.TypeTree, "%s", d.Error())
			dangling = append(dangling, d)
			c.ParentID = ""
			c.ParentRevisionID = models.NullableID{}
		}
	}

	for _, c := range comments {
		if c.ParentID == "" {
			continue
		}
		parent := index[c.ParentID]
		if rev := parent.CurrentRevision(); rev != nil {
			c.ParentRevisionID = models.SomeID(rev.ID)
		} else {
			c.ParentRevisionID = models.NullID()
		}
		parent.ChildIDs = append(parent.ChildIDs, c.ID)
		parent.ChildCount++

		ancestors, err := walk(c, index)
		if err != nil {
			return dangling, err
		}
		c.AncestorIDs = ancestors
	}

	b.logger.Infof(providers.TypeTree, "Linked %d comments, %d dangling parents", len(comments), len(dangling))
	return dangling, nil
}

// walk follows parent links iteratively; revisiting a comment is a cycle.
func walk(c *models.Comment, index map[string]*models.Comment) ([]string, error) {
	visited := map[string]struct{}{c.ID: {}}
	chain := []string{c.ID}
	var ancestors []string
	for pid := c.ParentID; pid != ""; {
		if _, seen := visited[pid]; seen {
			return nil, &models.CycleDetected{CommentID: c.ID, Chain: append(chain, pid)}
		}
		visited[pid] = struct{}{}
		chain = append(chain, pid)
		ancestors = append(ancestors, pid)
		parent, ok := index[pid]
		if !ok {
			break
		}
		pid = parent.ParentID
	}
	return ancestors, nil
}
