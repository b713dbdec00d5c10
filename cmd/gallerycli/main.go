// Command gallerycli drives the gallery API from a terminal.
//
//	gallerycli [-api URL] create -name Ada -prompt "a cat" [-surprise]
//	gallerycli [-api URL] list
//	gallerycli [-api URL] search -q cat
//	gallerycli [-api URL] export -o gallery.zip [-q cat]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"artgallery/pkg/client"
	"artgallery/pkg/creation"
	"artgallery/pkg/search"
	"artgallery/pkg/zip"
)

func main() {
	apiFlag := flag.String("api", envOr("GALLERY_API_URL", "http://localhost:8080"), "gallery API base URL")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	api := client.New(*apiFlag)
	ctx := context.Background()

	var err error
	switch cmd, args := flag.Arg(0), flag.Args()[1:]; cmd {
	case "create":
		err = runCreate(ctx, api, args)
	case "list":
		err = runSearch(ctx, api, nil)
	case "search":
		err = runSearch(ctx, api, args)
	case "export":
		err = runExport(ctx, api, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		exitWithError(err)
	}
}

func runCreate(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	name := fs.String("name", "", "author name")
	prompt := fs.String("prompt", "", "image prompt")
	surprise := fs.Bool("surprise", false, "use a random prompt")
	dryRun := fs.Bool("no-publish", false, "generate only")
	_ = fs.Parse(args)

	ctrl := creation.NewController(api, api)
	ctrl.SetName(*name)
	ctrl.SetPrompt(*prompt)
	if *surprise {
		fmt.Printf("prompt: %s\n", ctrl.SurpriseMe())
	}

	fmt.Println("generating image...")
	if err := ctrl.RequestGeneration(ctx); err != nil {
		return surfaced(ctrl, err)
	}
	st := ctrl.State()
	fmt.Printf("generated %d bytes of image data\n", len(st.Photo))
	if *dryRun {
		return nil
	}

	post, err := ctrl.RequestPublish(ctx)
	if err != nil {
		return surfaced(ctrl, err)
	}
	fmt.Printf("published %s by %s\n", post.ID, post.Name)
	return nil
}

// surfaced prefers the message the controller would show a user.
func surfaced(ctrl *creation.Controller, err error) error {
	var verr *creation.ValidationError
	if errors.As(err, &verr) {
		return verr
	}
	if msg := ctrl.State().Error; msg != "" {
		return errors.New(msg)
	}
	return err
}

func runSearch(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "case-insensitive author or prompt substring")
	tag := fs.String("tag", "", "one of: "+strings.Join(search.PopularTags, ", "))
	_ = fs.Parse(args)

	ctrl, err := searchGallery(ctx, api, *query, *tag)
	if err != nil {
		return err
	}

	posts := ctrl.Visible()
	if _, active := ctrl.Filtered(); active && len(posts) == 0 {
		fmt.Printf("no posts match %q\n", ctrl.Query())
		return nil
	}
	for _, p := range posts {
		fmt.Printf("%s  %-16s  %s\n", p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Name, p.Prompt)
	}
	return nil
}

func runExport(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "gallery.zip", "output archive")
	query := fs.String("q", "", "only export matching posts")
	_ = fs.Parse(args)

	ctrl, err := searchGallery(ctx, api, *query, "")
	if err != nil {
		return err
	}
	posts := ctrl.Visible()
	assets := make([]zip.Asset, 0, len(posts))
	for _, p := range posts {
		asset, err := zip.AssetFromDataURI(p.ID, p.Photo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", p.ID, err)
			continue
		}
		assets = append(assets, asset)
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, archive, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %d images to %s\n", len(assets), *out)
	return nil
}

// searchGallery loads the gallery and waits for the debounced filter to settle.
func searchGallery(ctx context.Context, api *client.Client, query, tag string) (*search.Controller, error) {
	done := make(chan struct{}, 1)
	ctrl := search.NewController(search.WithObserver(func(string, []client.Post) {
		done <- struct{}{}
	}))
	if err := ctrl.Load(ctx, api); err != nil {
		return nil, err
	}

	switch {
	case tag != "":
		ctrl.SelectTag(tag)
	case query != "":
		ctrl.OnQueryChange(query)
	}
	if ctrl.Pending() {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			return nil, errors.New("search did not settle")
		}
	}
	return ctrl, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gallerycli [-api URL] <create|list|search|export> [flags]")
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
