// Package memodex provides an embedded Go client for the memodex study
// assistant: it stores notes and conversation turns directly in Redis,
// detects and translates text through a LibreTranslate-compatible endpoint,
// and produces extractive summaries and keyword-grounded answers without an
// HTTP hop through the API server.
//
//	client, err := memodex.New(ctx, memodex.WithRedis("localhost:6379", ""))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	id, _ := client.Notes().Save(ctx, memodex.Note{
//	    Content: "RPUSH appends to the tail of a list",
//	    Tags:    []string{"redis"},
//	})
//
//	answer, _ := client.Assistant().Ask(ctx, "how do I append to a list?", "")
package memodex
