package catalog

// DefaultComponents seeds the static store with the stock catalog. Source
// and demo bodies are kept short here; a deployment backed by real files
// swaps in its own Store implementation.
func DefaultComponents() []Component {
	return []Component{
		{
			Name:         "AnimatedList",
			Category:     CategoryComponents,
			Description:  "A list that animates each item into view, one after another.",
			Source:       "export function AnimatedList({ children, delay = 1000 }) {\n  // staggers children with a spring transition\n}\n",
			Demo:         "<AnimatedList>\n  <Notification name=\"Payment received\" />\n  <Notification name=\"User signed up\" />\n</AnimatedList>\n",
			Dependencies: []string{"framer-motion"},
			Props: []PropMetadata{
				{Name: "delay", Type: "number", Default: "1000", Description: "Delay in milliseconds between items."},
				{Name: "children", Type: "ReactNode", Required: true},
			},
		},
		{
			Name:        "BentoGrid",
			Category:    CategoryComponents,
			Description: "A responsive grid of feature cards in the bento-box style.",
			Source:      "export function BentoGrid({ children, className }) {\n  // css grid with auto-rows\n}\n",
			Demo:        "<BentoGrid>\n  <BentoCard name=\"Search\" />\n  <BentoCard name=\"Sync\" />\n</BentoGrid>\n",
			Props: []PropMetadata{
				{Name: "className", Type: "string"},
				{Name: "children", Type: "ReactNode", Required: true},
			},
		},
		{
			Name:        "MagicCard",
			Category:    CategoryComponents,
			Description: "A card with a spotlight effect that follows the pointer.",
			Source:      "export function MagicCard({ children, gradientSize = 200 }) {\n  // radial gradient tracks mouse position\n}\n",
			Demo:        "<MagicCard gradientSize={250}>Hover me</MagicCard>\n",
			Props: []PropMetadata{
				{Name: "gradientSize", Type: "number", Default: "200"},
			},
		},
		{
			Name:        "NeonGradientCard",
			Category:    CategoryComponents,
			Description: "A card framed by an animated neon gradient border.",
			Source:      "export function NeonGradientCard({ children }) {\n  // conic gradient border animation\n}\n",
			Demo:        "<NeonGradientCard>Featured</NeonGradientCard>\n",
		},
		{
			Name:        "Marquee",
			Category:    CategoryComponents,
			Description: "An infinite scrolling band for logos or testimonial cards.",
			Source:      "export function Marquee({ children, reverse = false }) {\n  // duplicated track with translateX keyframes\n}\n",
			Demo:        "<Marquee reverse>\n  <Logo name=\"acme\" />\n</Marquee>\n",
			Props: []PropMetadata{
				{Name: "reverse", Type: "boolean", Default: "false"},
				{Name: "pauseOnHover", Type: "boolean", Default: "false"},
			},
		},
		{
			Name:        "TypingAnimation",
			Category:    CategoryTextAnimations,
			Description: "Text that types itself out character by character.",
			Source:      "export function TypingAnimation({ text, duration = 200 }) {\n  // interval-driven substring reveal\n}\n",
			Demo:        "<TypingAnimation text=\"Ship faster.\" />\n",
			Props: []PropMetadata{
				{Name: "text", Type: "string", Required: true},
				{Name: "duration", Type: "number", Default: "200"},
			},
		},
		{
			Name:         "WordRotate",
			Category:     CategoryTextAnimations,
			Description:  "Rotates through a list of words with a vertical flip.",
			Source:       "export function WordRotate({ words, duration = 2500 }) {\n  // AnimatePresence cycling index\n}\n",
			Demo:         "<WordRotate words={[\"Design\", \"Build\", \"Ship\"]} />\n",
			Dependencies: []string{"framer-motion"},
		},
		{
			Name:        "Meteors",
			Category:    CategorySpecialEffects,
			Description: "A shower of meteor streaks across the parent container.",
			Source:      "export function Meteors({ number = 20 }) {\n  // absolutely positioned spans with random delays\n}\n",
			Demo:        "<Meteors number={30} />\n",
			Props: []PropMetadata{
				{Name: "number", Type: "number", Default: "20"},
			},
		},
		{
			Name:        "BorderBeam",
			Category:    CategorySpecialEffects,
			Description: "A beam of light that travels along the border of a card.",
			Source:      "export function BorderBeam({ size = 200, duration = 15 }) {\n  // offset-path animation around the border\n}\n",
			Demo:        "<div className=\"relative\">\n  <BorderBeam />\n</div>\n",
		},
		{
			Name:         "Globe",
			Category:     CategorySpecialEffects,
			Description:  "An interactive WebGL globe with draggable rotation.",
			Source:       "export function Globe({ config }) {\n  // cobe renderer bound to a canvas\n}\n",
			Demo:         "<Globe />\n",
			Dependencies: []string{"cobe"},
		},
		{
			Name:        "Iphone15Pro",
			Category:    CategoryDeviceMocks,
			Description: "An iPhone 15 Pro frame mockup for screenshots.",
			Source:      "export function Iphone15Pro({ src, width = 433 }) {\n  // svg frame with clipped image slot\n}\n",
			Demo:        "<Iphone15Pro src=\"/screenshot.png\" />\n",
			Props: []PropMetadata{
				{Name: "src", Type: "string", Required: true},
				{Name: "width", Type: "number", Default: "433"},
			},
		},
		{
			Name:        "Safari",
			Category:    CategoryDeviceMocks,
			Description: "A Safari browser window frame mockup.",
			Source:      "export function Safari({ url, src }) {\n  // svg chrome with address bar text\n}\n",
			Demo:        "<Safari url=\"uicatalog.dev\" src=\"/landing.png\" />\n",
		},
	}
}
