// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history_cmd.go - Transcript archive command handler.
//
// Command: history [list|search|show|delete]
// Short:   Browse saved chat transcripts
//
// Examples:
//   nphies-chat history
//   nphies-chat history search eligibility
//   nphies-chat history show 4f1c...
//   nphies-chat history delete 4f1c...

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/brainsait/nphies-chat/internal/history"
	"github.com/brainsait/nphies-chat/internal/ui/styles"
	"github.com/brainsait/nphies-chat/internal/util"
)

const historyListLimit = 20

// HandleHistory dispatches the history subcommands against the transcript
// archive.
func HandleHistory(args Args) int {
	e, err := loadEnv(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if !e.cfg.History.Enabled {
		fmt.Fprintln(os.Stderr, styles.RenderWarning("history is disabled in config"))
		return 1
	}

	path, err := e.cfg.HistoryPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	archive, err := history.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(fmt.Sprintf("open archive: %v", err)))
		return 1
	}
	defer archive.Close()

	switch args.Subcommand {
	case "", "list":
		return historyList(archive)
	case "search":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: nphies-chat history search <query>"))
			return 1
		}
		return historySearch(archive, strings.Join(args.Raw, " "))
	case "show":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: nphies-chat history show <id>"))
			return 1
		}
		return historyShow(archive, args.Raw[0], e.lang.IsArabic())
	case "delete":
		if len(args.Raw) == 0 {
			fmt.Fprintln(os.Stderr, styles.RenderError("usage: nphies-chat history delete <id>"))
			return 1
		}
		return historyDelete(archive, args.Raw[0])
	default:
		fmt.Fprintf(os.Stderr, "unknown history subcommand %q\n", args.Subcommand)
		return 1
	}
}

func historyList(archive *history.Archive) int {
	infos, err := archive.List(historyListLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if len(infos) == 0 {
		fmt.Println(styles.RenderInfo("no saved transcripts, use /save in the chat"))
		return 0
	}
	printTranscripts(infos)
	return 0
}

func historySearch(archive *history.Archive, query string) int {
	infos, err := archive.Search(query, historyListLimit)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if len(infos) == 0 {
		fmt.Println(styles.RenderInfo(fmt.Sprintf("no transcripts match %q", query)))
		return 0
	}
	printTranscripts(infos)
	return 0
}

func printTranscripts(infos []history.TranscriptInfo) {
	for _, info := range infos {
		title := util.TruncateRunes(info.Title, 60)
		fmt.Printf("%s  %s  %3d msgs  %s\n",
			shortID(info.ID),
			info.ArchivedAt.Local().Format("2006-01-02 15:04"),
			info.Messages,
			title)
	}
}

// shortID returns the listing form of a transcript id. The show and delete
// subcommands accept this prefix back.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a transcript id prefix to the full id. Exact ids pass
// through; ambiguous prefixes are an error.
func resolveID(archive *history.Archive, prefix string) (string, error) {
	infos, err := archive.List(500)
	if err != nil {
		return "", err
	}
	match := ""
	for _, info := range infos {
		if info.ID == prefix {
			return info.ID, nil
		}
		if strings.HasPrefix(info.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("transcript id %q is ambiguous", prefix)
			}
			match = info.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no transcript matches %q", prefix)
	}
	return match, nil
}

func historyShow(archive *history.Archive, prefix string, arabic bool) int {
	id, err := resolveID(archive, prefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	conv, err := archive.Load(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	for _, msg := range conv.History() {
		fmt.Printf("[%s] %s\n", msg.Role.DisplayName(), msg.DisplayContent(arabic))
		if msg.HasImage() {
			fmt.Printf("  attachment: %s\n", msg.AttachedImage)
		}
	}
	return 0
}

func historyDelete(archive *history.Archive, prefix string) int {
	id, err := resolveID(archive, prefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	if err := archive.Delete(id); err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}
	fmt.Println(styles.RenderSuccess("transcript deleted"))
	return 0
}
