package apify

import (
	"strings"

	"github.com/fwojciec/sift"
)

// ActorTrends is the Actors key of the trending-videos actor.
const ActorTrends = "trends"

// Actors maps a platform (or ActorTrends) to an Apify actor ID.
type Actors map[string]string

// DefaultActors returns the stock actor for each platform.
func DefaultActors() Actors {
	return Actors{
		sift.PlatformTikTok:           "clockworks/tiktok-hashtag-scraper",
		sift.PlatformYouTube:          "streamers/youtube-shorts-scraper",
		sift.PlatformInstagram:        "apify/instagram-hashtag-scraper",
		sift.PlatformInstagramProfile: "apify/instagram-profile-scraper",
		ActorTrends:                   "emastra/tiktok-trending-scraper",
	}
}

// Dispatch is a resolved social request, ready to hand to an actor.
type Dispatch struct {
	// Platform is the resolved platform, which differs from the requested
	// one when Instagram keywords name accounts.
	Platform string
	ActorID  string
	Input    map[string]any
	Limit    int
}

// Resolver turns a SocialScrapeRequest into an actor dispatch.
type Resolver struct {
	actors Actors
}

// NewResolver creates a Resolver. A nil actors map uses DefaultActors.
func NewResolver(actors Actors) *Resolver {
	if actors == nil {
		actors = DefaultActors()
	}
	return &Resolver{actors: actors}
}

// Resolve picks the actor and builds its input. Every keyword has one
// leading '#' or '@' removed; duplicates are kept so that the actor sees
// what the caller typed.
func (r *Resolver) Resolve(req sift.SocialScrapeRequest) (*Dispatch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Platform == sift.PlatformInstagramProfile || req.Platform == ActorTrends {
		return nil, sift.Errorf(sift.EINVALID, "Unsupported platform: %s", req.Platform)
	}

	keywords := make([]string, 0, len(req.Keywords))
	profile := false
	for _, k := range req.Keywords {
		if strings.HasPrefix(strings.TrimSpace(k), "@") {
			profile = true
		}
		if k = sift.StripKeyword(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		return nil, sift.Errorf(sift.EINVALID, "At least one keyword is required")
	}

	platform := req.Platform
	if platform == sift.PlatformInstagram && profile {
		platform = sift.PlatformInstagramProfile
	}

	actorID, ok := r.actors[platform]
	if !ok || actorID == "" {
		return nil, sift.Errorf(sift.EINVALID, "Unsupported platform: %s", req.Platform)
	}

	limit := req.Limit()
	return &Dispatch{
		Platform: platform,
		ActorID:  actorID,
		Input:    actorInput(platform, keywords, limit),
		Limit:    limit,
	}, nil
}

// TrendsActor returns the actor ID used for trending hashtags.
func (r *Resolver) TrendsActor() (string, error) {
	actorID := r.actors[ActorTrends]
	if actorID == "" {
		return "", sift.Errorf(sift.EINVALID, "Unsupported platform: %s", ActorTrends)
	}
	return actorID, nil
}

func actorInput(platform string, keywords []string, limit int) map[string]any {
	switch platform {
	case sift.PlatformTikTok:
		return map[string]any{"hashtags": keywords, "resultsPerPage": limit}
	case sift.PlatformYouTube:
		return map[string]any{"searchQueries": keywords, "videosPerSearch": limit}
	case sift.PlatformInstagram:
		return map[string]any{"hashtags": keywords, "resultsLimit": limit}
	case sift.PlatformInstagramProfile:
		return map[string]any{"usernames": keywords}
	default:
		// Extra platforms configured by the operator get a generic input.
		return map[string]any{"keywords": keywords, "maxItems": limit}
	}
}
