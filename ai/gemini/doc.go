// Package gemini provides an embedding service backed by the Google Gemini API.
//
// Unlike OpenAI-compatible services, Gemini accepts a task type with each
// embedding request. Chunks are embedded as retrieval documents and search
// queries as retrieval queries, which is what the models are tuned for.
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
//	provider, err := gemini.NewProvider(ctx, config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
package gemini
