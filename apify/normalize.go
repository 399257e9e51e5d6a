package apify

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/sift"
	"github.com/tidwall/gjson"
)

// assign copies v into a result field. It reports false when v has no
// usable value for the field, so the next candidate path is tried.
type assign func(r *sift.SocialResult, v gjson.Result) bool

// rule maps a canonical field to candidate paths, first present wins.
type rule struct {
	set   assign
	paths []string
}

// apply runs rules against rec.
func apply(r *sift.SocialResult, rec gjson.Result, rules []rule) {
	for _, ru := range rules {
		for _, p := range ru.paths {
			if ru.set(r, rec.Get(p)) {
				break
			}
		}
	}
}

func str(field func(*sift.SocialResult) *string) assign {
	return func(r *sift.SocialResult, v gjson.Result) bool {
		s, ok := asString(v)
		if ok {
			*field(r) = s
		}
		return ok
	}
}

func num(field func(*sift.SocialResult) *int64) assign {
	return func(r *sift.SocialResult, v gjson.Result) bool {
		n, ok := asInt(v)
		if ok {
			*field(r) = n
		}
		return ok
	}
}

func setShares(r *sift.SocialResult, v gjson.Result) bool {
	n, ok := asInt(v)
	if ok {
		r.Shares = &n
	}
	return ok
}

func setHashtags(r *sift.SocialResult, v gjson.Result) bool {
	if !v.IsArray() {
		return false
	}
	tags := []string{}
	for _, el := range v.Array() {
		if el.IsObject() {
			el = el.Get("name")
		}
		if tag := strings.TrimPrefix(strings.TrimSpace(el.String()), "#"); tag != "" {
			tags = append(tags, tag)
		}
	}
	r.Hashtags = tags
	return true
}

// timestamp accepts ISO strings as-is and renders unix seconds as RFC 3339.
func timestamp(field func(*sift.SocialResult) *string) assign {
	return func(r *sift.SocialResult, v gjson.Result) bool {
		switch v.Type {
		case gjson.Number:
			*field(r) = time.Unix(v.Int(), 0).UTC().Format(time.RFC3339)
			return true
		case gjson.String:
			if v.Str == "" {
				return false
			}
			*field(r) = v.Str
			return true
		}
		return false
	}
}

// asString accepts non-empty strings and numbers. Null, empty strings,
// objects and arrays are absent.
func asString(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, v.Str != ""
	case gjson.Number:
		return v.Raw, true
	}
	return "", false
}

// asInt accepts numbers and numeric strings such as "1,204". Zero counts
// as present.
func asInt(v gjson.Result) (int64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Int(), true
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(v.Str), ",", "")
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

func fieldID(r *sift.SocialResult) *string { return &r.ID }
func fieldURL(r *sift.SocialResult) *string { return &r.URL }
func fieldTitle(r *sift.SocialResult) *string { return &r.Title }
func fieldDescription(r *sift.SocialResult) *string { return &r.Description }
func fieldCaption(r *sift.SocialResult) *string { return &r.Caption }
func fieldAuthor(r *sift.SocialResult) *string { return &r.Author }
func fieldThumbnail(r *sift.SocialResult) *string { return &r.Thumbnail }
func fieldImageURL(r *sift.SocialResult) *string { return &r.ImageURL }
func fieldKind(r *sift.SocialResult) *string { return &r.Type }
func fieldCreatedAt(r *sift.SocialResult) *string { return &r.CreatedAt }
func fieldPublishedAt(r *sift.SocialResult) *string { return &r.PublishedAt }
func fieldPostedAt(r *sift.SocialResult) *string { return &r.Timestamp }
func fieldLikes(r *sift.SocialResult) *int64 { return &r.Likes }
func fieldViews(r *sift.SocialResult) *int64 { return &r.Views }
func fieldComments(r *sift.SocialResult) *int64 { return &r.Comments }

var tiktokRules = []rule{
	{str(fieldID), []string{"id"}},
	{str(fieldURL), []string{"webVideoUrl", "url"}},
	{str(fieldDescription), []string{"text", "desc"}},
	{str(fieldAuthor), []string{"authorMeta.name", "author"}},
	{num(fieldLikes), []string{"diggCount", "likes"}},
	{num(fieldViews), []string{"playCount", "views"}},
	{num(fieldComments), []string{"commentCount", "comments"}},
	{setShares, []string{"shareCount", "shares"}},
	{setHashtags, []string{"hashtags"}},
	{str(fieldThumbnail), []string{"videoMeta.coverUrl", "thumbnail"}},
	{timestamp(fieldCreatedAt), []string{"createTimeISO", "createTime"}},
}

// youtubeRules map the ordinal column names the shorts actor emits. Each
// key maps to exactly one field.
var youtubeRules = []rule{
	{str(fieldID), []string{"01 ID"}},
	{str(fieldTitle), []string{"02 Title"}},
	{str(fieldURL), []string{"03 URL"}},
	{str(fieldAuthor), []string{"04 Channel"}},
	{num(fieldViews), []string{"05 Views"}},
	{num(fieldLikes), []string{"06 Likes"}},
	{num(fieldComments), []string{"07 Comments"}},
	{str(fieldThumbnail), []string{"08 Thumbnail"}},
	{timestamp(fieldPublishedAt), []string{"09 Published At"}},
	{setHashtags, []string{"10 Hashtags"}},
	{str(fieldDescription), []string{"11 Description"}},
}

var instagramRules = []rule{
	{str(fieldID), []string{"id", "shortCode"}},
	{str(fieldURL), []string{"url"}},
	{str(fieldCaption), []string{"caption"}},
	{str(fieldAuthor), []string{"ownerUsername", "owner"}},
	{num(fieldLikes), []string{"likesCount", "likes"}},
	{num(fieldComments), []string{"commentsCount", "comments"}},
	{num(fieldViews), []string{"videoViewCount", "views"}},
	{str(fieldImageURL), []string{"displayUrl", "imageUrl"}},
	{str(fieldKind), []string{"type"}},
	{setHashtags, []string{"hashtags"}},
	{timestamp(fieldPostedAt), []string{"timestamp"}},
}

// Follower, post and following counts ride in the views, likes and
// comments slots.
var profileRules = []rule{
	{str(fieldID), []string{"id", "username"}},
	{str(fieldURL), []string{"url"}},
	{str(fieldTitle), []string{"fullName", "username"}},
	{str(fieldDescription), []string{"biography"}},
	{num(fieldViews), []string{"followersCount"}},
	{num(fieldLikes), []string{"postsCount"}},
	{num(fieldComments), []string{"followsCount"}},
	{str(fieldAuthor), []string{"username"}},
	{str(fieldImageURL), []string{"profilePicUrlHD", "profilePicUrl"}},
}

// mapper converts one provider record into zero or more results.
type mapper func(rec gjson.Result) []sift.SocialResult

var mappers = map[string]mapper{
	sift.PlatformTikTok:           mapTikTok,
	sift.PlatformYouTube:          mapYouTube,
	sift.PlatformInstagram:        mapInstagram,
	sift.PlatformInstagramProfile: mapInstagramProfile,
}

// Normalize maps dataset records for platform onto canonical results.
// Records of platforms without a mapper are passed through unchanged.
func Normalize(platform string, items []json.RawMessage) []sift.SocialResult {
	results := make([]sift.SocialResult, 0, len(items))
	m, ok := mappers[platform]
	for _, item := range items {
		if !ok {
			results = append(results, sift.SocialResult{Platform: platform, Raw: item})
			continue
		}
		rec := gjson.ParseBytes(item)
		if !rec.IsObject() {
			continue
		}
		results = append(results, m(rec)...)
	}
	return results
}

func mapTikTok(rec gjson.Result) []sift.SocialResult {
	r := sift.SocialResult{Platform: sift.PlatformTikTok}
	apply(&r, rec, tiktokRules)
	return []sift.SocialResult{r}
}

func mapYouTube(rec gjson.Result) []sift.SocialResult {
	r := sift.SocialResult{Platform: sift.PlatformYouTube}
	apply(&r, rec, youtubeRules)
	if r.URL == "" && r.ID != "" {
		r.URL = "https://youtube.com/shorts/" + r.ID
	}
	return []sift.SocialResult{r}
}

func mapInstagram(rec gjson.Result) []sift.SocialResult {
	return []sift.SocialResult{instagramPost(rec)}
}

func instagramPost(rec gjson.Result) sift.SocialResult {
	r := sift.SocialResult{Platform: sift.PlatformInstagram}
	apply(&r, rec, instagramRules)
	if r.URL == "" {
		if code := rec.Get("shortCode").String(); code != "" {
			r.URL = "https://www.instagram.com/p/" + code + "/"
		}
	}
	return r
}

// mapInstagramProfile emits the profile followed by its recent posts.
func mapInstagramProfile(rec gjson.Result) []sift.SocialResult {
	profile := sift.SocialResult{Platform: sift.PlatformInstagram, Type: "profile"}
	apply(&profile, rec, profileRules)

	username := rec.Get("username").String()
	if profile.URL == "" && username != "" {
		profile.URL = "https://www.instagram.com/" + username + "/"
	}

	posts := rec.Get("latestPosts").Array()
	results := make([]sift.SocialResult, 0, 1+len(posts))
	results = append(results, profile)
	for _, p := range posts {
		if !p.IsObject() {
			continue
		}
		post := instagramPost(p)
		post.Author = username
		results = append(results, post)
	}
	return results
}
