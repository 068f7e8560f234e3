package service

import (
	"errors"
	"sync"

	"mingle/backend/internal/apperr"
	"mingle/backend/internal/models"

	"gorm.io/gorm"
)

const (
	defaultFeedLimit  = 50
	defaultSquareTake = 50
	maxSquareTake     = 100
)

// FeedService assembles a viewer's labeled personal feed from the
// relationship ledger, the block registry, and the post store, and serves
// the anonymous cursor-paginated public square feed.
type FeedService struct {
	db        *gorm.DB
	relations *RelationService
	blocks    *BlockService
}

func NewFeedService(db *gorm.DB, relations *RelationService, blocks *BlockService) *FeedService {
	return &FeedService{db: db, relations: relations, blocks: blocks}
}

// LabeledPost is a feed post tagged with the viewer's relation to its author.
type LabeledPost struct {
	Post     models.Post
	Relation models.RelationTag
}

// PersonalFeed returns the viewer's feed: posts by the viewer and everyone
// connected to them, newest first, block-suppressed, each labeled with
// exactly one relation tag.
func (s *FeedService) PersonalFeed(viewerID string, limit int) ([]LabeledPost, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}

	// The three relation-set reads have no ordering dependency; issue them
	// concurrently and merge after all complete.
	var (
		wg            sync.WaitGroup
		acquaintances []string
		strangers     []string
		following     []string
		errs          [3]error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		acquaintances, errs[0] = s.relations.ListUndirected(viewerID, models.KindAcquaintance)
	}()
	go func() {
		defer wg.Done()
		strangers, errs[1] = s.relations.ListUndirected(viewerID, models.KindStranger)
	}()
	go func() {
		defer wg.Done()
		following, errs[2] = s.relations.ListFollowing(viewerID)
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	authorSet := make(map[string]struct{}, 1+len(acquaintances)+len(strangers)+len(following))
	authorSet[viewerID] = struct{}{}
	for _, id := range acquaintances {
		authorSet[id] = struct{}{}
	}
	for _, id := range strangers {
		authorSet[id] = struct{}{}
	}
	for _, id := range following {
		authorSet[id] = struct{}{}
	}
	authors := make([]string, 0, len(authorSet))
	for id := range authorSet {
		authors = append(authors, id)
	}

	var posts []models.Post
	err := s.db.
		Where("author_id IN ? AND group_id IS NULL", authors).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal("failed to query feed posts", err)
	}

	// Block suppression runs after the relationship-based author set is
	// computed so a block always wins regardless of relationship category.
	blocked, err := s.blocks.BlockedEitherSet(viewerID)
	if err != nil {
		return nil, err
	}

	acquaintanceSet := toSet(acquaintances)
	strangerSet := toSet(strangers)
	followingSet := toSet(following)

	feed := make([]LabeledPost, 0, len(posts))
	for _, post := range posts {
		if _, hidden := blocked[post.AuthorID]; hidden {
			continue
		}
		feed = append(feed, LabeledPost{
			Post:     post,
			Relation: labelFor(post.AuthorID, viewerID, acquaintanceSet, strangerSet, followingSet),
		})
	}
	return feed, nil
}

// labelFor picks the single relation tag for an author, first match wins.
// NONE is reachable only if author-set construction and filtering diverge;
// treat it as a defect signal, not a valid state.
func labelFor(authorID, viewerID string, acquaintances, strangers, following map[string]struct{}) models.RelationTag {
	switch {
	case authorID == viewerID:
		return models.TagSelf
	case contains(acquaintances, authorID):
		return models.TagAcquaintance
	case contains(strangers, authorID):
		return models.TagStranger
	case contains(following, authorID):
		return models.TagFollowing
	default:
		return models.TagNone
	}
}

// SquarePage is one page of the anonymous public square feed.
type SquarePage struct {
	Items      []models.Post
	NextCursor *string
}

// PublicSquareFeed returns ungrouped PUBLIC posts, newest first with a
// stable tiebreak on id. The cursor is the id of the last item of the
// previous page; the query returns the rows strictly after it (keyset
// pagination, immune to skew from concurrent inserts). NextCursor is set
// only when a full page was returned.
func (s *FeedService) PublicSquareFeed(cursor string, take int) (*SquarePage, error) {
	if take <= 0 {
		take = defaultSquareTake
	}
	if take > maxSquareTake {
		take = maxSquareTake
	}

	query := s.db.
		Where("group_id IS NULL AND visibility = ?", models.VisibilityPublic)

	if cursor != "" {
		var last models.Post
		if err := s.db.First(&last, "id = ?", cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("unknown cursor")
			}
			return nil, apperr.Internal("failed to resolve cursor", err)
		}
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			last.CreatedAt, last.CreatedAt, last.ID,
		)
	}

	var posts []models.Post
	err := query.
		Order("created_at DESC, id DESC").
		Limit(take).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		return nil, apperr.Internal("failed to query public square", err)
	}

	page := &SquarePage{Items: posts}
	if len(posts) == take {
		next := posts[len(posts)-1].ID
		page.NextCursor = &next
	}
	return page, nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
