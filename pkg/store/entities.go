package store

import (
	"bytes"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"github.com/cockroachdb/pebble"

	"fedisync/pkg/logger"
	"fedisync/pkg/models"
)

// GetPerson returns the person header or ErrNotFound.
func GetPerson(scope string, id int64) (*models.Person, error) {
	var p models.Person
	if err := getJSON(personKey(scope, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func PutPerson(b *pebble.Batch, p *models.Person) error {
	return putJSON(b, personKey(p.Scope, p.ID), p)
}

func GetPersonInfo(scope string, id int64) (*models.PersonInfo, error) {
	var pi models.PersonInfo
	if err := getJSON(personInfoKey(scope, id), &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func PutPersonInfo(b *pebble.Batch, pi *models.PersonInfo) error {
	return putJSON(b, personInfoKey(pi.Scope, pi.PersonID), pi)
}

func GetCommunity(scope string, id int64) (*models.Community, error) {
	var c models.Community
	if err := getJSON(communityKey(scope, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func PutCommunity(b *pebble.Batch, c *models.Community) error {
	return putJSON(b, communityKey(c.Scope, c.ID), c)
}

func GetCommunityInfo(scope string, id int64) (*models.CommunityInfo, error) {
	var ci models.CommunityInfo
	if err := getJSON(communityInfoKey(scope, id), &ci); err != nil {
		return nil, err
	}
	return &ci, nil
}

func PutCommunityInfo(b *pebble.Batch, ci *models.CommunityInfo) error {
	return putJSON(b, communityInfoKey(ci.Scope, ci.CommunityID), ci)
}

func GetPost(scope string, id int64) (*models.Post, error) {
	var p models.Post
	if err := getJSON(postKey(scope, id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func PutPost(b *pebble.Batch, p *models.Post) error {
	return putJSON(b, postKey(p.Scope, p.ID), p)
}

func GetPostInfo(scope string, id int64) (*models.PostInfo, error) {
	var pi models.PostInfo
	if err := getJSON(postInfoKey(scope, id), &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

func PutPostInfo(b *pebble.Batch, pi *models.PostInfo) error {
	return putJSON(b, postInfoKey(pi.Scope, pi.PostID), pi)
}

// SavePostInfo writes a post info record in its own transaction.
func SavePostInfo(pi *models.PostInfo) error {
	return setJSON(postInfoKey(pi.Scope, pi.PostID), pi)
}

func GetComment(scope string, postID, id int64) (*models.Comment, error) {
	var c models.Comment
	if err := getJSON(commentKey(scope, postID, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func PutComment(b *pebble.Batch, c *models.Comment) error {
	return putJSON(b, commentKey(c.Scope, c.PostID, c.ID), c)
}

// SaveComment writes a comment in its own transaction.
func SaveComment(c *models.Comment) error {
	return setJSON(commentKey(c.Scope, c.PostID, c.ID), c)
}

// ListComments returns all cached comments for a post in key order.
func ListComments(scope string, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	err := iterPrefix(commentPrefix(scope, postID), func(_, value []byte) error {
		var c models.Comment
		if err := json.Unmarshal(value, &c); err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	return out, err
}

// FindCommentByID scans a scope's comments for the given comment id. The
// comment key space is per-post, so vote targets addressed only by
// comment id resolve through this helper.
func FindCommentByID(scope string, id int64) (*models.Comment, error) {
	var found *models.Comment
	prefix := []byte("comment:" + scope + ":")
	suffix := []byte(":" + strconv.FormatInt(id, 10))
	err := iterPrefix(prefix, func(key, value []byte) error {
		if found != nil || !bytes.HasSuffix(key, suffix) {
			return nil
		}
		var c models.Comment
		if err := json.Unmarshal(value, &c); err != nil {
			return err
		}
		if c.ID == id {
			found = &c
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

// PutActivityRef records the activity-id -> local-id mapping for a post.
func PutActivityRef(b *pebble.Batch, scope, activityID string, postID int64) error {
	return b.Set(activityRefKey(scope, activityID, postID), []byte{}, nil)
}

// LookupPostByActivity resolves an external stable identifier to a local
// post id. The mapping is expected to be unique; more than one match is a
// data-integrity violation that is logged and tolerated by picking the
// first match in key order.
func LookupPostByActivity(scope, activityID string) (int64, bool, error) {
	var ids []int64
	prefix := activityRefPrefix(scope, activityID)
	err := iterPrefix(prefix, func(key, _ []byte) error {
		id, perr := strconv.ParseInt(string(key[len(prefix):]), 10, 64)
		if perr != nil {
			return nil
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	if len(ids) > 1 {
		logger.Log.Warn("ambiguous_activity_identity",
			zap.String("scope", scope),
			zap.String("activity_id", activityID),
			zap.Int("matches", len(ids)))
	}
	return ids[0], true, nil
}
