// Command solver plays Goldforge sessions against a running server. It
// creates (or resumes) a session over the REST API and applies rules
// from a merge-then-gild strategy until the pack is finished, the
// inventory runs dry, or the rule budget is exhausted.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

// Client is a minimal REST client for the solver
type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(packID string) (*engine.State, error) {
	var reqBody []byte
	var err error

	if packID != "" {
		reqBody, err = json.Marshal(map[string]string{"pack_id": packID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session service.SessionInfo
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*engine.State, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/state", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state engine.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

func (c *Client) ApplyRule(rule *engine.Rule) (*service.ApplyResult, error) {
	body, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("marshal rule: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/rules", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("apply rule: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("apply rule failed: %s - %s", resp.Status, string(respBody))
	}

	var result service.ApplyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse apply response: %w", err)
	}

	return &result, nil
}

func ruleLabel(rule *engine.Rule) string {
	return fmt.Sprintf("%s + %s -> %s", rule.Source.ID, rule.Action.ID, rule.Target.ID)
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	packID := flag.String("pack", "", "Level pack ID (empty for server default)")
	continueSession := flag.String("continue", "", "Resume an existing session by ID")
	maxRules := flag.Int("max-rules", 200, "Maximum rules to apply before giving up")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between rules in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *engine.State
	var err error

	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		savedSessionID = *continueSession
	} else if data, err := os.ReadFile(sessionFile); err == nil {
		savedSessionID = string(bytes.TrimSpace(data))
	}

	if savedSessionID != "" {
		client.sessionID = savedSessionID
		log.Printf("Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("Failed to resume session (may be expired): %v", err)
			savedSessionID = ""
		}
	}

	if savedSessionID == "" {
		state, err = client.CreateSession(*packID)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("Session created: %s", client.sessionID)

		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	log.Printf("Pack: %s, starting on level %d: %s", state.PackName, state.LevelIndex, state.LevelName)

	strategy := NewGildStrategy()
	ruleCount := 0
	levelsCompleted := 0

	for ruleCount < *maxRules {
		rule := strategy.NextRule(state)
		if rule == nil {
			log.Printf("No playable rule left (inventory exhausted or board stuck)")
			break
		}

		result, err := client.ApplyRule(rule)
		if err != nil {
			log.Fatalf("Apply failed: %v", err)
		}
		ruleCount++

		if !result.Success {
			// A rejection means the local plan disagrees with the server.
			// The state is unchanged, so retrying the same rule would loop.
			log.Printf("Rule %s rejected: %s", ruleLabel(rule), result.Outcome)
			break
		}

		if *verbose {
			log.Printf("Rule %d: %s (moved=%d changed=%d)", ruleCount, ruleLabel(rule), result.Moved, result.Changed)
		}

		if result.LevelComplete {
			levelsCompleted++
			log.Printf("🏆 Level complete! (%d so far, next level %d)", levelsCompleted, result.NextLevel)

			if result.Wrapped {
				log.Printf("\n🎉 Pack finished in %d rules across %d levels!", ruleCount, levelsCompleted)
				log.Printf("Session: %s", client.sessionID)
				os.Exit(0)
			}
		}

		state = result.GameState

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	log.Printf("\n❌ Gave up after %d rules, %d levels completed", ruleCount, levelsCompleted)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}
