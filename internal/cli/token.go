package cli

import "github.com/dmitrijs2005/mindlens/internal/config"

// SetToken reads the Hugging Face API token without echo and switches
// answer generation to the Hugging Face backend for this session.
func (a *App) SetToken() error {
	secret, err := GetSecret(a.out, "Enter Hugging Face API token")
	if err != nil {
		return err
	}
	if len(secret) == 0 {
		a.println("Token unchanged.")
		return nil
	}

	a.config.HFAPIToken = string(secret)
	a.config.LLMBackend = config.LLMBackendHuggingFace
	a.summarizer = buildSummarizer(a.config, a.log)

	a.println("Token set. Answers will use the Hugging Face backend.")
	return nil
}
