package topic

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/vartanbeno/go-reddit/v2/reddit"

	"brainrot-pipeline/config"
)

// hookKeywords boost a post title's score when present
var hookKeywords = []string{
	"skibidi", "sigma", "rizz", "ohio", "gyatt", "aura", "mog",
	"fanum", "mewing", "looksmaxxing", "brainrot", "grindset",
	"gen alpha", "npc", "cooked", "ratio", "goated",
}

// Researcher pulls trending meme post titles from Reddit and turns the
// best one into a video topic
type Researcher struct {
	cfg    *config.Config
	client *reddit.Client
}

// NewResearcher creates a read-only Reddit client. No credentials needed.
func NewResearcher(cfg *config.Config) (*Researcher, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &Researcher{cfg: cfg, client: client}, nil
}

// Run fetches hot posts from the configured subreddits, scores them
// against the brainrot hook keywords, and returns the best candidate as
// a topic. Falls back to the built-in catalog if nothing usable came back.
func (r *Researcher) Run(ctx context.Context) (string, error) {
	log.Println("[topic] Researching trending topics on Reddit...")

	type scored struct {
		title string
		score int
	}
	var candidates []scored

	for _, sub := range r.cfg.Research.Subreddits {
		posts, _, err := r.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{
			Limit: r.cfg.Research.PostsPerSub,
		})
		if err != nil {
			log.Printf("[topic] r/%s fetch warning: %v", sub, err)
			continue
		}
		for _, post := range posts {
			if post.Score < r.cfg.Research.MinScore {
				continue
			}
			if post.NumberOfComments < r.cfg.Research.MinComments {
				continue
			}
			candidates = append(candidates, scored{
				title: post.Title,
				score: scoreTitle(post.Title, post.Score),
			})
		}
	}

	if len(candidates) == 0 {
		log.Println("[topic] No usable posts found — falling back to built-in catalog")
		return Random(), nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	best := candidates[0].title
	log.Printf("[topic] ✅ Selected trending topic: %q (score: %d)", best, candidates[0].score)
	return best, nil
}

// scoreTitle mixes Reddit upvotes with a bonus per hook keyword
func scoreTitle(title string, upvotes int) int {
	score := upvotes
	lower := strings.ToLower(title)
	for _, kw := range hookKeywords {
		if strings.Contains(lower, kw) {
			score += 500
		}
	}
	return score
}
