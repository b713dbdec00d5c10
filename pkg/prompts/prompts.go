// Package prompts holds the "surprise me" prompt catalogue shared by the API
// and its clients.
package prompts

import "math/rand"

var surpriseMe = []string{
	"an armchair in the shape of an avocado",
	"a surrealist dream-like oil painting by Salvador Dalí of a cat playing checkers",
	"teddy bears shopping for groceries in Japan, ukiyo-e",
	"an oil painting by Matisse of a humanoid robot playing chess",
	"panda mad scientist mixing sparkling chemicals, digital art",
	"a man walking through the bustling streets of Kowloon at night, lit by many bright neon shop signs, 50mm lens",
	"a 3D render of an astronaut walking in a green desert",
	"a Van Gogh style painting of an American football player",
	"a futuristic neon lit cyborg face",
	"a plush toy robot sitting against a yellow wall",
	"a sunlit indoor lounge area with a pool containing a flamingo",
	"an Impressionist oil painting of sunflowers in a purple vase",
	"a synthwave style sunset above the reflecting water of the sea, digital art",
	"a hand drawn sketch of a Porsche 911",
	"a cyberpunk monster in a control room",
	"a photo of a teddy bear on a skateboard in Times Square",
	"a stained glass window depicting a hamburger and french fries",
	"a fortune-telling shiba inu reading your fate in a giant hamburger, digital art",
}

// All returns a copy of the catalogue.
func All() []string {
	out := make([]string, len(surpriseMe))
	copy(out, surpriseMe)
	return out
}

// Random returns a catalogue prompt different from current.
func Random(current string) string {
	return pick(current, rand.Intn)
}

func pick(current string, intn func(int) int) string {
	if len(surpriseMe) == 1 {
		return surpriseMe[0]
	}
	for {
		p := surpriseMe[intn(len(surpriseMe))]
		if p != current {
			return p
		}
	}
}
