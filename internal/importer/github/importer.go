package github

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"portfolio-api/internal/domain/skill"
	"portfolio-api/internal/skillgraph"
	"portfolio-api/internal/ws"

	"github.com/gocolly/colly/v2"
)

const defaultBaseURL = "https://github.com"

// Importer walks a GitHub profile's public repositories and feeds the
// languages and topics it finds into the skill graph as one bulk source
// keyed on the profile login. Re-running the import is idempotent: the
// source link dedup absorbs repeats.
type Importer struct {
	graph       *skillgraph.Synchronizer
	baseURL     string
	allowedHost string
	logger      *log.Logger
}

func NewImporter(graph *skillgraph.Synchronizer, baseURL string, logger *log.Logger) *Importer {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		base = defaultBaseURL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Importer{
		graph:       graph,
		baseURL:     strings.TrimRight(base, "/"),
		allowedHost: hostFromBaseURL(base),
		logger:      logger,
	}
}

// Report summarizes one import run.
type Report struct {
	Login        string `json:"login"`
	Repositories int    `json:"repositories"`
	Identifiers  int    `json:"identifiers"`
	SkillsSynced int    `json:"skills_synced"`
	Errors       int    `json:"errors"`
}

type repoListing struct {
	Name     string
	Link     string
	Language string
}

// ImportProfile scrapes up to pages listing pages of the profile, then
// fetches each repository page for its topics with workers goroutines.
func (i *Importer) ImportProfile(ctx context.Context, login string, pages, workers int) (Report, error) {
	login = strings.TrimSpace(strings.ToLower(login))
	if login == "" {
		return Report{}, fmt.Errorf("empty github login")
	}
	if pages <= 0 {
		pages = 1
	}
	if workers <= 0 {
		workers = 2
	}

	report := Report{Login: login}

	var repos []repoListing
	for page := 1; page <= pages; page++ {
		listURL := fmt.Sprintf("%s/%s?page=%d&tab=repositories", i.baseURL, login, page)
		items, err := i.scrapeRepoList(ctx, listURL)
		if err != nil {
			i.logger.Printf("github import | list page failed page=%d error=%v", page, err)
			report.Errors++
			continue
		}
		if len(items) == 0 {
			break
		}
		repos = append(repos, items...)
	}
	report.Repositories = len(repos)

	var mu sync.Mutex
	found := make([]string, 0, len(repos)*2)
	collect := func(names ...string) {
		mu.Lock()
		found = append(found, names...)
		mu.Unlock()
	}

	for _, r := range repos {
		if r.Language != "" {
			collect(r.Language)
		}
	}

	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(2)
	results := pool.Run(ctx)

	for _, r := range repos {
		link := r.Link
		if strings.TrimSpace(link) == "" {
			continue
		}
		pool.Submit(func(ctx context.Context) error {
			topics, err := i.scrapeRepoTopics(ctx, link)
			if err != nil {
				return err
			}
			collect(topics...)
			return nil
		})
	}
	pool.Close()

	for res := range results {
		if res.Err != nil {
			i.logger.Printf("github import | repo fetch failed error=%v", res.Err)
			report.Errors++
		}
	}

	identifiers := identifiersFromNames(found)
	report.Identifiers = len(identifiers)

	synced, err := i.graph.SyncSkills(ctx, identifiers, skill.SourceGitHub, login)
	if err != nil {
		return report, err
	}
	report.SkillsSynced = len(synced)

	i.logger.Printf("github import | login=%s repos=%d identifiers=%d synced=%d errors=%d",
		login, report.Repositories, report.Identifiers, report.SkillsSynced, report.Errors)
	ws.NotifyImport(login, report.Repositories, report.SkillsSynced)
	return report, nil
}

func (i *Importer) scrapeRepoList(ctx context.Context, listURL string) ([]repoListing, error) {
	c := i.newCollector()

	items := make([]repoListing, 0)
	c.OnHTML("#user-repositories-list li", func(e *colly.HTMLElement) {
		item := repoListing{
			Name:     strings.TrimSpace(e.ChildText(`a[itemprop="name codeRepository"]`)),
			Language: strings.TrimSpace(e.ChildText(`span[itemprop="programmingLanguage"]`)),
		}
		href := strings.TrimSpace(e.ChildAttr(`a[itemprop="name codeRepository"]`, "href"))
		if href != "" {
			item.Link = e.Request.AbsoluteURL(href)
		}
		if item.Name == "" && item.Link == "" {
			return
		}
		items = append(items, item)
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(listURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return items, nil
}

func (i *Importer) scrapeRepoTopics(ctx context.Context, repoURL string) ([]string, error) {
	c := i.newCollector()

	topics := make([]string, 0)
	c.OnHTML("a.topic-tag", func(e *colly.HTMLElement) {
		if t := strings.TrimSpace(e.Text); t != "" {
			topics = append(topics, t)
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err := c.Visit(repoURL); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}
	return topics, nil
}

func (i *Importer) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.AllowedDomains(i.allowedHost),
	)
	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 2,
		Delay:       300 * time.Millisecond,
		RandomDelay: 500 * time.Millisecond,
	})
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "PortfolioImporter/0.1")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	return c
}

// identifiersFromNames folds languages and topics into deduplicated
// skill identifiers. Topic slugs arrive hyphenated ("machine-learning");
// the hyphens become spaces so category inference sees words.
func identifiersFromNames(names []string) []skillgraph.Identifier {
	seen := make(map[string]struct{}, len(names))
	out := make([]skillgraph.Identifier, 0, len(names))
	for _, raw := range names {
		name := skillgraph.CleanName(strings.ReplaceAll(raw, "-", " "))
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skillgraph.NameIdentifier(name))
	}
	return out
}

func hostFromBaseURL(base string) string {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil || u.Host == "" {
		return "github.com"
	}
	if h, _, err := net.SplitHostPort(u.Host); err == nil {
		return h
	}
	return u.Host
}
