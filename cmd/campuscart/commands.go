package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"campuscart/internal/delivery/cli"
	"campuscart/internal/domain/entity"
	"campuscart/internal/usecase"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// runFunc executes one parsed command against the handler.
type runFunc func(ctx context.Context, h *cli.Handler) (cli.Response, error)

type command struct {
	name  string
	usage string
	parse func(args []string) (runFunc, error)
}

var commands = []command{
	{name: "seed", usage: "Load the demo users, listings and cart", parse: parseNoArgs("seed", (*cli.Handler).Seed)},
	{name: "summary", usage: "Show the admin dashboard", parse: parseNoArgs("summary", (*cli.Handler).Summary)},
	{name: "browse", usage: "List items (-search, -category, -sort)", parse: parseBrowse},
	{name: "login", usage: "Log in or sign up (-email, -name, -role, -phone, -whatsapp)", parse: parseLogin},
	{name: "logout", usage: "End the current session", parse: parseNoArgs("logout", (*cli.Handler).Logout)},
	{name: "list-item", usage: "List an item as the current seller", parse: parseListItem},
	{name: "relist", usage: "Copy one of your listings under a new id (-id)", parse: parseRelist},
	{name: "stock", usage: "Change item stock (-id, -set or -inc)", parse: parseStock},
	{name: "cart-add", usage: "Add an item to the cart (-id, -qty)", parse: parseCartAdd},
	{name: "cart-remove", usage: "Remove an item from the cart (-id)", parse: parseCartRemove},
	{name: "cart-set", usage: "Set the quantity of a cart line (-id, -qty)", parse: parseCartSet},
	{name: "discount", usage: "Apply (-percent) or remove (-remove) a discount", parse: parseDiscount},
	{name: "cart-clear", usage: "Empty the cart", parse: parseNoArgs("cart-clear", (*cli.Handler).ClearCart)},
	{name: "checkout", usage: "Check out the cart", parse: parseNoArgs("checkout", (*cli.Handler).Checkout)},
	{name: "block", usage: "Block a user (-id, -reason)", parse: parseBlock},
	{name: "unblock", usage: "Unblock a user (-id)", parse: parseUnblock},
	{name: "delete-listing", usage: "Delete a listing (-id)", parse: parseDeleteListing},
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}

	return command{}, false
}

func parseNoArgs(name string, fn func(*cli.Handler, context.Context) (cli.Response, error)) func([]string) (runFunc, error) {
	return func(args []string) (runFunc, error) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		if err := fs.Parse(args); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s flags", name)
		}

		return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
			return fn(h, ctx)
		}, nil
	}
}

func parseBrowse(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	search := fs.String("search", "", "Match name or description")
	category := fs.String("category", "", "Education, Hostel, Electronics or Free")
	sort := fs.String("sort", string(usecase.SortByNewest), "name, price-low, price-high or newest")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse browse flags")
	}
	if *category != "" && !entity.Category(*category).IsValid() {
		return nil, errors.Errorf("unknown category %q", *category)
	}

	filter := usecase.BrowseFilter{
		Search:   *search,
		Category: entity.Category(*category),
		Sort:     usecase.SortOrder(*sort),
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.Browse(ctx, filter)
	}, nil
}

func parseLogin(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	name := fs.String("name", "", "Display name, used when signing up")
	roles := strings.Join(entity.AllRoles().ToStrings(), ", ")
	role := fs.String("role", string(entity.RoleBuyer), "One of: "+roles)
	phone := fs.String("phone", "", "Ten digit phone number")
	whatsapp := fs.String("whatsapp", "", "WhatsApp number")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse login flags")
	}
	if *email == "" {
		return nil, errors.New("-email is required")
	}
	if !entity.Role(strings.ToLower(*role)).IsValid() {
		return nil, errors.Errorf("-role must be one of: %s", roles)
	}

	input := &usecase.SignInInput{
		Name:     *name,
		Email:    *email,
		Role:     entity.Role(strings.ToLower(*role)),
		Phone:    *phone,
		WhatsApp: *whatsapp,
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.Login(ctx, input)
	}, nil
}

func parseListItem(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("list-item", flag.ContinueOnError)
	name := fs.String("name", "", "Item name")
	category := fs.String("category", string(entity.CategoryEducation), "Item category")
	price := fs.Float64("price", 0, "Price in rupees")
	quantity := fs.Int("qty", 1, "Stock quantity")
	description := fs.String("description", "", "Item description")
	file := fs.String("file", "", "Optional document or image to attach")
	images := fs.String("images", "", "Comma separated image URLs")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse list-item flags")
	}
	if *name == "" {
		return nil, errors.New("-name is required")
	}

	input := &usecase.ListItemInput{
		Name:        *name,
		Category:    entity.Category(*category),
		Price:       *price,
		Quantity:    *quantity,
		Description: *description,
	}
	for _, url := range strings.Split(*images, ",") {
		if url = strings.TrimSpace(url); url != "" {
			input.Images = append(input.Images, url)
		}
	}
	if *file != "" {
		attachment, err := readAttachment(*file)
		if err != nil {
			return nil, err
		}
		input.File = attachment
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.ListItem(ctx, input)
	}, nil
}

// readAttachment loads path and labels it with its detected MIME type.
func readAttachment(path string) (*entity.Attachment, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read attachment")
	}

	return &entity.Attachment{
		Name:     filepath.Base(path),
		MIMEType: mimetype.Detect(content).String(),
		Size:     int64(len(content)),
		Content:  content,
	}, nil
}

func parseStock(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	id := fs.String("id", "", "Item id")
	set := fs.String("set", "", "New quantity")
	inc := fs.Bool("inc", false, "Add one to the quantity")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse stock flags")
	}
	if *id == "" {
		return nil, errors.New("-id is required")
	}

	update := entity.SetFromText(*set)
	if *inc {
		update = entity.Increment()
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.UpdateStock(ctx, *id, update)
	}, nil
}

func parseCartAdd(args []string) (runFunc, error) {
	id, qty, err := parseItemQuantity("cart-add", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.AddToCart(ctx, id, qty)
	}, nil
}

func parseCartSet(args []string) (runFunc, error) {
	id, qty, err := parseItemQuantity("cart-set", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.SetCartQuantity(ctx, id, qty)
	}, nil
}

func parseItemQuantity(name string, args []string) (string, int, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "Item id")
	qty := fs.Int("qty", 1, "Quantity")
	if err := fs.Parse(args); err != nil {
		return "", 0, errors.Wrapf(err, "failed to parse %s flags", name)
	}
	if *id == "" {
		return "", 0, errors.New("-id is required")
	}

	return *id, *qty, nil
}

func parseCartRemove(args []string) (runFunc, error) {
	id, err := parseID("cart-remove", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.RemoveFromCart(ctx, id)
	}, nil
}

func parseDiscount(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("discount", flag.ContinueOnError)
	percent := fs.Float64("percent", 0, "Percent of the current subtotal")
	remove := fs.Bool("remove", false, "Drop the current discount")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse discount flags")
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.ApplyDiscount(ctx, *percent, *remove)
	}, nil
}

func parseBlock(args []string) (runFunc, error) {
	fs := flag.NewFlagSet("block", flag.ContinueOnError)
	id := fs.String("id", "", "User id")
	reason := fs.String("reason", "", "Reason shown to the user")
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse block flags")
	}
	if *id == "" {
		return nil, errors.New("-id is required")
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.Block(ctx, *id, *reason)
	}, nil
}

func parseUnblock(args []string) (runFunc, error) {
	id, err := parseID("unblock", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.Unblock(ctx, id)
	}, nil
}

func parseRelist(args []string) (runFunc, error) {
	id, err := parseID("relist", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.Relist(ctx, id)
	}, nil
}

func parseDeleteListing(args []string) (runFunc, error) {
	id, err := parseID("delete-listing", args)
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, h *cli.Handler) (cli.Response, error) {
		return h.DeleteListing(ctx, id)
	}, nil
}

func parseID(name string, args []string) (string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "Target id")
	if err := fs.Parse(args); err != nil {
		return "", errors.Wrapf(err, "failed to parse %s flags", name)
	}
	if *id == "" {
		return "", errors.New("-id is required")
	}

	return *id, nil
}

func printUsage() {
	fmt.Println("Usage: campuscart <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("  %-15s %s\n", cmd.name, cmd.usage)
	}
	fmt.Println()
	fmt.Println("Run 'campuscart <command> -h' for command flags.")
}
