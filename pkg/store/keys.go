package store

import "fmt"

// Key namespaces. Every entity key carries the account scope so that two
// scopes never share records. Derived comment-element keys embed a padded
// index so prefix iteration yields presentation order.
//
//	person:<scope>:<id>                  Person header
//	personinfo:<scope>:<id>              PersonInfo side record
//	community:<scope>:<id>               Community header
//	communityinfo:<scope>:<id>           CommunityInfo side record
//	post:<scope>:<id>                    Post header
//	postinfo:<scope>:<id>                PostInfo side record
//	postak:<scope>:<activity>:<id>       activity-id index
//	comment:<scope>:<post>:<id>          Comment
//	feed:<scope>:<feed>                  Feed descriptor
//	feedseen:<scope>:<feed>:<activity>   feed dedup-set member
//	feedpage:<scope>:<feed>:<index>      Page
//	celem:<scope>:<post>:<sort>:<index>  CommentElement (derived)

func personKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("person:%s:%d", scope, id))
}

func personInfoKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("personinfo:%s:%d", scope, id))
}

func communityKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("community:%s:%d", scope, id))
}

func communityInfoKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("communityinfo:%s:%d", scope, id))
}

func postKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("post:%s:%d", scope, id))
}

func postInfoKey(scope string, id int64) []byte {
	return []byte(fmt.Sprintf("postinfo:%s:%d", scope, id))
}

func activityRefKey(scope, activityID string, id int64) []byte {
	return []byte(fmt.Sprintf("postak:%s:%s:%d", scope, activityID, id))
}

func activityRefPrefix(scope, activityID string) []byte {
	return []byte(fmt.Sprintf("postak:%s:%s:", scope, activityID))
}

func commentKey(scope string, postID, id int64) []byte {
	return []byte(fmt.Sprintf("comment:%s:%d:%d", scope, postID, id))
}

func commentPrefix(scope string, postID int64) []byte {
	return []byte(fmt.Sprintf("comment:%s:%d:", scope, postID))
}

func feedKey(scope, feedID string) []byte {
	return []byte(fmt.Sprintf("feed:%s:%s", scope, feedID))
}

func feedPrefix(scope string) []byte {
	return []byte(fmt.Sprintf("feed:%s:", scope))
}

func feedSeenKey(scope, feedID, activityID string) []byte {
	return []byte(fmt.Sprintf("feedseen:%s:%s:%s", scope, feedID, activityID))
}

func feedPageKey(scope, feedID string, index int) []byte {
	return []byte(fmt.Sprintf("feedpage:%s:%s:%06d", scope, feedID, index))
}

func feedPagePrefix(scope, feedID string) []byte {
	return []byte(fmt.Sprintf("feedpage:%s:%s:", scope, feedID))
}

func elementKey(scope string, postID int64, sort string, index int) []byte {
	return []byte(fmt.Sprintf("celem:%s:%d:%s:%06d", scope, postID, sort, index))
}

func elementSortPrefix(scope string, postID int64, sort string) []byte {
	return []byte(fmt.Sprintf("celem:%s:%d:%s:", scope, postID, sort))
}

func elementPrefix(scope string, postID int64) []byte {
	return []byte(fmt.Sprintf("celem:%s:%d:", scope, postID))
}

// prefixUpperBound returns the smallest key strictly greater than every
// key with the given prefix, for use as an exclusive range end.
func prefixUpperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}
