// Package creation drives the generate-then-publish workflow of the create
// page as an explicit state machine.
package creation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"artgallery/pkg/client"
	"artgallery/pkg/prompts"
)

const (
	msgEnterPrompt   = "Please enter a prompt"
	msgFillAllFields = "Please fill in all fields"
	msgGenerateFirst = "Please generate an image first"
	fallbackGenerate = "Failed to generate image"
	fallbackPublish  = "Failed to share image"
)

var (
	// ErrBusy is returned when a request is already in flight.
	ErrBusy = errors.New("creation: request already in flight")
	// ErrSuperseded is returned when Reset ran while the request was in flight.
	ErrSuperseded = errors.New("creation: response discarded after reset")
)

// ValidationError is a local rejection; no request was sent.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Phase int

const (
	Idle Phase = iota
	Generating
	Generated
	Publishing
	Published
	GenerationFailed
	PublishFailed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Generated:
		return "generated"
	case Publishing:
		return "publishing"
	case Published:
		return "published"
	case GenerationFailed:
		return "generation_failed"
	case PublishFailed:
		return "publish_failed"
	default:
		return "unknown"
	}
}

// State is a copy of the controller's form and phase.
type State struct {
	Phase  Phase
	Name   string
	Prompt string
	Photo  string
	Error  string
	Post   *client.Post
}

// Generating reports whether a generation request is in flight.
func (s State) Generating() bool { return s.Phase == Generating }

// Publishing reports whether a publish request is in flight.
func (s State) Publishing() bool { return s.Phase == Publishing }

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Publisher interface {
	CreatePost(ctx context.Context, name, prompt, photo string) (*client.Post, error)
}

// Controller serializes state changes behind a mutex that is never held
// across a network call.
type Controller struct {
	gen Generator
	pub Publisher

	mu    sync.Mutex
	state State
	seq   uint64
}

func NewController(gen Generator, pub Publisher) *Controller {
	return &Controller{gen: gen, pub: pub}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Name = name
	c.clearErrorLocked()
}

func (c *Controller) SetPrompt(prompt string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prompt = prompt
	c.clearErrorLocked()
}

// SurpriseMe replaces the prompt with a random one and returns it.
func (c *Controller) SurpriseMe() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Prompt = prompts.Random(c.state.Prompt)
	c.clearErrorLocked()
	return c.state.Prompt
}

// Reset returns to an empty Idle form. Responses still in flight are discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.state = State{}
}

// RequestGeneration generates an image for the current prompt.
func (c *Controller) RequestGeneration(ctx context.Context) error {
	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		return ErrBusy
	}
	prompt := c.state.Prompt
	if strings.TrimSpace(prompt) == "" {
		c.mu.Unlock()
		return &ValidationError{Message: msgEnterPrompt}
	}
	c.state.Phase = Generating
	c.state.Error = ""
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	photo, err := c.gen.Generate(ctx, prompt)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return ErrSuperseded
	}
	if err != nil {
		c.state.Phase = GenerationFailed
		c.state.Error = client.UserMessage(err, fallbackGenerate)
		return err
	}
	c.state.Photo = photo
	c.state.Phase = Generated
	return nil
}

// RequestPublish shares the generated image with the current name and prompt.
func (c *Controller) RequestPublish(ctx context.Context) (*client.Post, error) {
	c.mu.Lock()
	if c.busyLocked() {
		c.mu.Unlock()
		return nil, ErrBusy
	}
	name, prompt, photo := c.state.Name, c.state.Prompt, c.state.Photo
	if strings.TrimSpace(name) == "" || strings.TrimSpace(prompt) == "" {
		c.mu.Unlock()
		return nil, &ValidationError{Message: msgFillAllFields}
	}
	if photo == "" {
		c.mu.Unlock()
		return nil, &ValidationError{Message: msgGenerateFirst}
	}
	c.state.Phase = Publishing
	c.state.Error = ""
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	post, err := c.pub.CreatePost(ctx, name, prompt, photo)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return nil, ErrSuperseded
	}
	if err != nil {
		c.state.Phase = PublishFailed
		c.state.Error = client.UserMessage(err, fallbackPublish)
		return nil, err
	}
	c.state.Phase = Published
	c.state.Post = post
	return post, nil
}

func (c *Controller) busyLocked() bool {
	return c.state.Phase == Generating || c.state.Phase == Publishing
}

func (c *Controller) clearErrorLocked() {
	if c.state.Phase != GenerationFailed && c.state.Phase != PublishFailed {
		return
	}
	c.state.Error = ""
	if c.state.Photo != "" {
		c.state.Phase = Generated
	} else {
		c.state.Phase = Idle
	}
}
