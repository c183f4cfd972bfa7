package llm

import (
	"bytes"
	"text/template"

	"web-to-notion-bot/config"
)

// TemplateProcessor handles template processing for analysis prompts
type TemplateProcessor struct {
	tweetTemplate   *template.Template
	websiteTemplate *template.Template
}

// NewTemplateProcessor creates a new TemplateProcessor with initialized templates
func NewTemplateProcessor(prompts config.PromptConfig) (*TemplateProcessor, error) {
	tweetTmpl, err := template.New("tweet").Parse(prompts.TweetAnalysisPrompt)
	if err != nil {
		return nil, err
	}

	websiteTmpl, err := template.New("website").Parse(prompts.WebsiteAnalysisPrompt)
	if err != nil {
		return nil, err
	}

	return &TemplateProcessor{
		tweetTemplate:   tweetTmpl,
		websiteTemplate: websiteTmpl,
	}, nil
}

// ProcessTweetTemplate renders the tweet analysis prompt
func (p *TemplateProcessor) ProcessTweetTemplate(tweetInfo string) (string, error) {
	var buf bytes.Buffer
	err := p.tweetTemplate.Execute(&buf, struct {
		TweetInfo string
	}{
		TweetInfo: tweetInfo,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ProcessWebsiteTemplate renders the website analysis prompt
func (p *TemplateProcessor) ProcessWebsiteTemplate(websiteInfo string) (string, error) {
	var buf bytes.Buffer
	err := p.websiteTemplate.Execute(&buf, struct {
		WebsiteInfo string
	}{
		WebsiteInfo: websiteInfo,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
