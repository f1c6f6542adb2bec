// ABOUTME: CLI commands for feed operations.
// ABOUTME: Provides list, create, and delete subcommands for the user's posts.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/homefeed/internal/feed"
	"github.com/2389-research/homefeed/internal/models"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage your posts",
	Long:  "Create posts with media, list your feed, and delete posts.",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your posts",
	Long:  "Fetch and print your posts in server order.",
	RunE:  runPostList,
}

var postCreateCmd = &cobra.Command{
	Use:   "create <text>",
	Short: "Create a post",
	Long:  "Upload a new post with an optional caption, image, and video.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPostCreate,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <postId>",
	Short: "Delete a post",
	Long:  "Delete one of your posts by its ID.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

// Flags
var (
	postCaption string
	postImage   string
	postVideo   string
)

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postDeleteCmd)

	postCreateCmd.Flags().StringVar(&postCaption, "caption", "", "Caption for the post")
	postCreateCmd.Flags().StringVar(&postImage, "image", "", "Path to an image to attach")
	postCreateCmd.Flags().StringVar(&postVideo, "video", "", "Path to a video to attach")
}

func runPostList(cmd *cobra.Command, args []string) error {
	detail, err := globalClient.FetchUserDetail(cmd.Context())
	if err != nil {
		return err
	}

	manager := feed.NewManager()
	manager.Initialize(detail.Posts)

	if manager.Len() == 0 {
		fmt.Println("No posts yet.")
		return nil
	}

	for _, post := range manager.Posts() {
		printPost(post)
	}
	return nil
}

func printPost(post models.Post) {
	fmt.Printf("--- %s", post.PostID)
	if !post.CreatedAt.IsZero() {
		fmt.Printf(" [%s]", post.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
	if post.Caption != "" {
		fmt.Println(post.Caption)
	}
	if post.Body != "" {
		fmt.Println(post.Body)
	}
	if post.ImageURL != "" {
		fmt.Printf("image: %s\n", post.ImageURL)
	}
	if post.VideoURL != "" {
		fmt.Printf("video: %s\n", post.VideoURL)
	}
	fmt.Println()
}

func runPostCreate(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) > 0 {
		text = args[0]
	}

	// The backend is the sole validator: an empty draft is still uploaded.
	draft := models.DraftPost{
		Caption: postCaption,
		Body:    text,
		Image:   strings.TrimSpace(postImage),
		Video:   strings.TrimSpace(postVideo),
	}

	if err := globalClient.UploadPost(cmd.Context(), draft); err != nil {
		return err
	}

	fmt.Println("Post uploaded. Run 'homefeed post list' for the refreshed feed.")
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	postID := args[0]
	if err := globalClient.DeletePost(cmd.Context(), postID); err != nil {
		return err
	}
	fmt.Printf("Post %s deleted.\n", postID)
	return nil
}
