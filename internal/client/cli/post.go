package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/marketfeed/internal/client/media"
	"github.com/dmitrijs2005/marketfeed/internal/client/models"
	"github.com/dmitrijs2005/marketfeed/internal/client/services"
)

var getMultiline = GetMultiline

func impactChoices() string {
	slugs := make([]string, 0, len(models.Impacts()))
	for _, i := range models.Impacts() {
		slugs = append(slugs, i.Slug())
	}
	return strings.Join(slugs, ", ")
}

// Post composes a post: impact, optional currency pair, text and an
// optional media file.
func (a *App) Post(ctx context.Context) error {
	rawImpact, err := getSimpleText(a.reader, "Market impact ("+impactChoices()+")", a.out)
	if err != nil {
		return err
	}
	impact, err := models.ParseImpact(rawImpact)
	if err != nil {
		fmt.Fprintln(a.out, "Unknown impact:", rawImpact)
		return err
	}

	pair, err := getSimpleText(a.reader, "Currency pair (optional)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "What's your take?", a.out)
	if err != nil {
		return err
	}
	path, err := getSimpleText(a.reader, "Image or video file (optional)", a.out)
	if err != nil {
		return err
	}

	req := services.PostRequest{Content: content, Impact: impact, CurrencyPair: pair}
	if path != "" {
		m, err := media.Load(path, a.config.MaxMediaBytes)
		if err != nil {
			return a.fail(ctx, err)
		}
		req.Media = m
	}

	p, err := a.postService.CreatePost(ctx, req)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Posted %s\n", p.ID)
	return nil
}

// Feed prints every post, newest first.
func (a *App) Feed(ctx context.Context) error {
	items, err := a.postService.Feed(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "The feed is empty")
		return nil
	}
	for _, item := range items {
		printFeedItem(a, item)
	}
	return nil
}

func printFeedItem(a *App, item services.FeedItem) {
	p := item.Post
	name := item.AuthorName
	if name == "" {
		name = "anonymous"
	}

	fmt.Fprintf(a.out, "[%s] %s (%s) · %s · %s\n", p.ID, name, item.AuthorInitials, p.TimeLabel(), p.Impact.Sentiment())
	if p.CurrencyPair != "" {
		fmt.Fprintf(a.out, "  %s\n", p.CurrencyPair)
	}
	for _, line := range strings.Split(p.Content, "\n") {
		if line != "" {
			fmt.Fprintf(a.out, "  %s\n", line)
		}
	}
	if p.Media != nil {
		fmt.Fprintf(a.out, "  [%s: %s, %d bytes]\n", p.Media.Kind, p.Media.Name, len(p.Media.Data))
	}

	liked := ""
	if p.Likes.Liked {
		liked = " (liked)"
	}
	fmt.Fprintf(a.out, "  ❤️ %d%s  💬 %d\n", p.Likes.Count, liked, p.CommentCount())
	for _, c := range p.Comments {
		author := models.LocalPart(c.AuthorEmail)
		if author == "" {
			author = "anonymous"
		}
		fmt.Fprintf(a.out, "    %s: %s\n", author, c.Text)
	}
}

func (a *App) postID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, "Post id", a.out)
}

// Like toggles the like on a post.
func (a *App) Like(ctx context.Context, args []string) error {
	id, err := a.postID(args)
	if err != nil {
		return err
	}

	count, liked, err := a.engagementService.ToggleLike(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	verb := "Unliked"
	if liked {
		verb = "Liked"
	}
	fmt.Fprintf(a.out, "%s (%d)\n", verb, count)
	return nil
}

// Comment adds a comment. The text may follow the post id on the command
// line; otherwise it is prompted for.
func (a *App) Comment(ctx context.Context, args []string) error {
	id, err := a.postID(args)
	if err != nil {
		return err
	}

	var text string
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	} else if text, err = getSimpleText(a.reader, "Comment", a.out); err != nil {
		return err
	}

	if _, err := a.engagementService.AddComment(ctx, id, text); err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Comment added")
	return nil
}
