// ABOUTME: CLI commands for user search and friend requests.
// ABOUTME: Provides search and add subcommands mirroring the dashboard's search pane.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/homefeed/internal/search"
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Find users and send friend requests",
}

var friendsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for users",
	Long:  "Search users by name and show the friend-request status for each result.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFriendsSearch,
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE:  runFriendsAdd,
}

func init() {
	rootCmd.AddCommand(friendsCmd)
	friendsCmd.AddCommand(friendsSearchCmd)
	friendsCmd.AddCommand(friendsAddCmd)
}

func runFriendsSearch(cmd *cobra.Command, args []string) error {
	found, err := globalClient.SearchUsers(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	results := search.NewResults()
	results.Replace(found)

	if results.Len() == 0 {
		fmt.Println("No users found.")
		return nil
	}

	for _, entry := range results.Entries() {
		fmt.Printf("%s - %s\n", entry.DisplayName(), entry.RequestStatus)
	}
	return nil
}

func runFriendsAdd(cmd *cobra.Command, args []string) error {
	username := args[0]

	ok, err := globalClient.SendFriendRequest(cmd.Context(), username)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("the backend declined the friend request to @%s", username)
	}

	fmt.Printf("Friend request sent to @%s.\n", username)
	return nil
}
