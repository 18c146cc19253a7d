package service

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/lshigami/Editorly/config"
	"github.com/lshigami/Editorly/internal/apperr"
	"github.com/lshigami/Editorly/internal/dto"
	"github.com/lshigami/Editorly/internal/model"
	"github.com/lshigami/Editorly/internal/repository"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

const defaultCategory = "General"

// FeedIngestionService pulls the syndication feed and appends articles whose
// link has not been seen before.
type FeedIngestionService interface {
	Ingest(ctx context.Context) (*dto.RSSFetchResponse, error)
}

type feedIngestionService struct {
	articleRepo repository.ArticleRepository
	parser      *gofeed.Parser
	feedURL     string
	source      string
	running     atomic.Bool
	now         func() time.Time
}

func NewFeedIngestionService(articleRepo repository.ArticleRepository, cfg *config.Config) FeedIngestionService {
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: 30 * time.Second}
	source := cfg.RSS.SourceName
	if source == "" {
		source = model.DefaultArticleSource
	}
	return &feedIngestionService{
		articleRepo: articleRepo,
		parser:      parser,
		feedURL:     cfg.RSS.FeedURL,
		source:      source,
		now:         time.Now,
	}
}

// htmlToText flattens an HTML fragment to whitespace-normalised text.
func htmlToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func itemImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, key := range []string{"content", "thumbnail"} {
			for _, ext := range media[key] {
				if url := strings.TrimSpace(ext.Attrs["url"]); url != "" {
					return url
				}
			}
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

func (s *feedIngestionService) toArticle(item *gofeed.Item) (model.Article, bool) {
	link := strings.TrimSpace(item.Link)
	title := strings.TrimSpace(item.Title)
	if link == "" || title == "" {
		return model.Article{}, false
	}
	category := defaultCategory
	if len(item.Categories) > 0 && strings.TrimSpace(item.Categories[0]) != "" {
		category = strings.TrimSpace(item.Categories[0])
	}
	pubDate := s.now().UTC()
	if item.PublishedParsed != nil {
		pubDate = item.PublishedParsed.UTC()
	}
	return model.Article{
		Title:       title,
		Source:      s.source,
		Link:        &link,
		Description: htmlToText(item.Description),
		Category:    category,
		Image:       stringPtr(itemImage(item)),
		PubDate:     &pubDate,
	}, true
}

func (s *feedIngestionService) Ingest(ctx context.Context) (*dto.RSSFetchResponse, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, apperr.Conflict("RSS fetch already in progress")
	}
	defer s.running.Store(false)

	log.Info().Str("url", s.feedURL).Msg("Fetching RSS feed")
	feed, err := s.parser.ParseURLWithContext(s.feedURL, ctx)
	if err != nil {
		log.Error().Err(err).Str("url", s.feedURL).Msg("RSS fetch failed")
		return nil, apperr.Upstream("Failed to fetch RSS feed", err)
	}

	candidates := make([]model.Article, 0, len(feed.Items))
	seen := make(map[string]struct{}, len(feed.Items))
	links := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		article, ok := s.toArticle(item)
		if !ok {
			continue
		}
		if _, dup := seen[*article.Link]; dup {
			continue
		}
		seen[*article.Link] = struct{}{}
		links = append(links, *article.Link)
		candidates = append(candidates, article)
	}

	existing, err := s.articleRepo.ExistingLinks(ctx, links)
	if err != nil {
		log.Error().Err(err).Msg("RSS: failed to read existing links")
		return nil, apperr.Internal("Failed to store RSS articles", err)
	}
	fresh := make([]model.Article, 0, len(candidates))
	for _, a := range candidates {
		if _, ok := existing[*a.Link]; !ok {
			fresh = append(fresh, a)
		}
	}

	added, err := s.articleRepo.InsertIgnoringDuplicates(ctx, fresh)
	if err != nil {
		log.Error().Err(err).Int("candidates", len(fresh)).Msg("RSS: failed to insert articles")
		return nil, apperr.Internal("Failed to store RSS articles", err)
	}
	if added > 0 {
		log.Info().Int64("added", added).Msg("RSS: new articles added")
	} else {
		log.Info().Msg("RSS: no new articles to add")
	}
	return &dto.RSSFetchResponse{Message: "RSS fetch complete", Added: int(added), Total: len(feed.Items)}, nil
}
