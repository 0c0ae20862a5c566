package commands

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vibeshot/core/internal/domain/entities"
	"github.com/vibeshot/core/internal/ports"
)

// NewAuthCommands creates the signup, login and logout commands
func NewAuthCommands() []*cobra.Command {
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			runSignup(name, email, password)
		},
	}
	signupCmd.Flags().String("name", "", "Display name (required)")
	signupCmd.Flags().String("email", "", "Email address (required)")
	signupCmd.Flags().String("password", "", "Password (required)")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			runLogin(email, password)
		},
	}
	loginCmd.Flags().String("email", "", "Email address (required)")
	loginCmd.Flags().String("password", "", "Password (required)")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Run: func(cmd *cobra.Command, args []string) {
			runLogout()
		},
	}

	return []*cobra.Command{signupCmd, loginCmd, logoutCmd}
}

// NewPostCommands creates the publish and social action commands
func NewPostCommands() []*cobra.Command {
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Publish an image with a caption",
		Run: func(cmd *cobra.Command, args []string) {
			imagePath, _ := cmd.Flags().GetString("image")
			caption, _ := cmd.Flags().GetString("caption")
			runCreatePost(imagePath, caption)
		},
	}
	postCmd.Flags().String("image", "", "Path to the image file (required)")
	postCmd.Flags().String("caption", "", "Caption text (required)")

	likeCmd := &cobra.Command{
		Use:   "like <post-id>",
		Short: "Like or unlike a post",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runToggleLike(args[0])
		},
	}

	followCmd := &cobra.Command{
		Use:   "follow <name>",
		Short: "Follow or unfollow a user",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runToggleFollow(args[0])
		},
	}

	commentCmd := &cobra.Command{
		Use:   "comment <post-id> <text...>",
		Short: "Comment on a post",
		Args:  cobra.MinimumNArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			runPostComment(args[0], strings.Join(args[1:], " "))
		},
	}

	avatarCmd := &cobra.Command{
		Use:   "avatar",
		Short: "Update your profile picture",
		Run: func(cmd *cobra.Command, args []string) {
			imagePath, _ := cmd.Flags().GetString("image")
			runUpdateAvatar(imagePath)
		},
	}
	avatarCmd.Flags().String("image", "", "Path to the image file (required)")

	return []*cobra.Command{postCmd, likeCmd, followCmd, commentCmd, avatarCmd}
}

// NewFeedCommands creates the feed, users and profile commands
func NewFeedCommands() []*cobra.Command {
	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse the feed",
		Run: func(cmd *cobra.Command, args []string) {
			filter, _ := cmd.Flags().GetString("filter")
			search, _ := cmd.Flags().GetString("search")
			page, _ := cmd.Flags().GetInt("page")
			runFeed(filter, search, page)
		},
	}
	feedCmd.Flags().String("filter", "all", "Feed filter: all, trending or following")
	feedCmd.Flags().String("search", "", "Caption search text")
	feedCmd.Flags().Int("page", 1, "Page number")

	usersCmd := &cobra.Command{
		Use:   "users <query>",
		Short: "Search users by name",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runSearchUsers(args[0])
		},
	}

	profileCmd := &cobra.Command{
		Use:   "profile [name]",
		Short: "Show a profile (yours when no name is given)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			runProfile(name)
		},
	}

	return []*cobra.Command{feedCmd, usersCmd, profileCmd}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print VibeShot version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("VibeShot v1.0.0")
		},
	}
}

func runSignup(name, email, password string) {
	if name == "" || email == "" || password == "" {
		log.Fatal("Name, email and password are required")
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	user, err := a.auth.Signup(ctx, ports.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Account created. Signed in as %s <%s>\n", user.Name, user.Email)
}

func runLogin(email, password string) {
	if email == "" || password == "" {
		log.Fatal("Email and password are required")
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	user, err := a.auth.Login(ctx, ports.LoginRequest{Email: email, Password: password})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Welcome back, %s!\n", user.Name)
}

func runLogout() {
	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	if err := a.auth.Logout(ctx); err != nil {
		fatal(err)
	}
	fmt.Println("Signed out.")
}

func runCreatePost(imagePath, caption string) {
	if imagePath == "" {
		log.Fatal("An image file is required")
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		log.Fatalf("Cannot read %s: %v", imagePath, err)
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	post, err := a.posts.CreatePost(ctx, ports.CreatePostRequest{Caption: caption, Image: data})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Published post %d: %q\n", post.ID, post.Caption)
}

func runToggleLike(rawID string) {
	postID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Fatalf("Invalid post id %q", rawID)
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	post, err := a.posts.ToggleLike(ctx, postID)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("Post %d now has %d likes\n", post.ID, post.LikeCount())
}

func runToggleFollow(name string) {
	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	following, err := a.posts.ToggleFollow(ctx, name)
	if err != nil {
		fatal(err)
	}
	if following {
		fmt.Printf("Now following %s\n", name)
	} else {
		fmt.Printf("Unfollowed %s\n", name)
	}
}

func runPostComment(rawID, text string) {
	postID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		log.Fatalf("Invalid post id %q", rawID)
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	comment, err := a.posts.PostComment(ctx, ports.CommentRequest{PostID: postID, Text: text})
	if err != nil {
		fatal(err)
	}
	fmt.Printf("%s commented: %s\n", comment.Author, comment.Text)
}

func runUpdateAvatar(imagePath string) {
	if imagePath == "" {
		log.Fatal("An image file is required")
	}
	data, err := os.ReadFile(imagePath)
	if err != nil {
		log.Fatalf("Cannot read %s: %v", imagePath, err)
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	if _, err := a.posts.UpdateAvatar(ctx, data); err != nil {
		fatal(err)
	}
	fmt.Println("Profile picture updated.")
}

func runFeed(filter, search string, page int) {
	feedFilter := entities.FeedFilter(filter)
	if !feedFilter.IsValid() {
		log.Fatalf("Invalid filter %q: use all, trending or following", filter)
	}

	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	result, err := a.feed.LoadPage(ctx, ports.FeedState{
		Filter: feedFilter,
		Search: search,
		Page:   page,
	})
	if err != nil {
		fatal(err)
	}

	session := a.store.Session()
	for _, post := range result.Posts {
		liked := " "
		if session != nil && post.LikedByEmail(session.Email) {
			liked = "*"
		}
		created := time.UnixMilli(post.CreatedAt).Format("2006-01-02 15:04")
		fmt.Printf("%s %d  @%-12s %-40q %3d likes  %3d comments  %s\n",
			liked, post.ID, post.Author, post.Caption, post.LikeCount(), len(post.Comments), created)
	}
	fmt.Printf("%d of %d posts", len(result.Posts), result.Total)
	if result.HasMore {
		fmt.Printf("  (more: --page %d)", page+1)
	}
	fmt.Println()
}

func runSearchUsers(query string) {
	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	users := a.feed.SearchUsers(query)
	if len(users) == 0 {
		fmt.Println("No users found.")
		return
	}
	for _, u := range users {
		fmt.Printf("@%s <%s>\n", u.Name, u.Email)
	}
}

func runProfile(name string) {
	ctx := cmdContext()
	a, err := newApp(ctx)
	if err != nil {
		log.Fatalf("Startup failed: %v", err)
	}
	defer a.Close()

	if name == "" {
		session := a.store.Session()
		if session == nil {
			log.Fatal("Login required. Run: vibeshot login")
		}
		name = session.Name
	}

	view, err := a.feed.Profile(name)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("@%s — %d posts • %d likes\n", view.User.Name, view.PostCount(), view.LikeCount())
	for _, post := range view.Posts {
		fmt.Printf("  %d  %-40q %3d likes\n", post.ID, post.Caption, post.LikeCount())
	}
}
