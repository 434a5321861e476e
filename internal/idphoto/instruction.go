package idphoto

import (
	"fmt"
	"strings"
)

// BuildInstruction renders the fixed editing instruction for the given aspect
// ratio. The ratio appears twice: in the opening demand and again in a closing
// reminder.
func BuildInstruction(aspectRatio string) string {
	aspect := strings.TrimSpace(aspectRatio)
	if aspect == "" {
		aspect = DefaultAspectRatio
	}
	parts := []string{
		fmt.Sprintf("Transform this photo into a professional ID photo with an exact aspect ratio of %s. The aspect ratio is the most important requirement and is not negotiable.", aspect),
		"Dress the subject in a plain white collared shirt.",
		"Pose the subject facing forward with shoulders squared toward the camera.",
		"Replace the background with a solid light blue backdrop.",
		"Crop the composition to head and shoulders.",
		"Keep the subject's face and identity exactly as they appear in the original photo.",
		fmt.Sprintf("The final image must have an exact aspect ratio of %s.", aspect),
	}
	return strings.Join(parts, " ")
}
