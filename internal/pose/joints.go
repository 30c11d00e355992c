// Package pose implements the frame-level comparison core: named body
// landmarks, joint-angle computation, and the student-vs-master similarity
// score with corrective feedback.
package pose

import "sort"

// Joint identifies one body landmark in the MediaPipe pose vocabulary.
// Landmark storage is indexed by Joint, so a known joint always resolves.
type Joint int

const (
	Nose Joint = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex
	JointCount
)

// jointNames follows the MediaPipe landmark naming convention.
var jointNames = [JointCount]string{
	Nose:           "NOSE",
	LeftEyeInner:   "LEFT_EYE_INNER",
	LeftEye:        "LEFT_EYE",
	LeftEyeOuter:   "LEFT_EYE_OUTER",
	RightEyeInner:  "RIGHT_EYE_INNER",
	RightEye:       "RIGHT_EYE",
	RightEyeOuter:  "RIGHT_EYE_OUTER",
	LeftEar:        "LEFT_EAR",
	RightEar:       "RIGHT_EAR",
	MouthLeft:      "MOUTH_LEFT",
	MouthRight:     "MOUTH_RIGHT",
	LeftShoulder:   "LEFT_SHOULDER",
	RightShoulder:  "RIGHT_SHOULDER",
	LeftElbow:      "LEFT_ELBOW",
	RightElbow:     "RIGHT_ELBOW",
	LeftWrist:      "LEFT_WRIST",
	RightWrist:     "RIGHT_WRIST",
	LeftPinky:      "LEFT_PINKY",
	RightPinky:     "RIGHT_PINKY",
	LeftIndex:      "LEFT_INDEX",
	RightIndex:     "RIGHT_INDEX",
	LeftThumb:      "LEFT_THUMB",
	RightThumb:     "RIGHT_THUMB",
	LeftHip:        "LEFT_HIP",
	RightHip:       "RIGHT_HIP",
	LeftKnee:       "LEFT_KNEE",
	RightKnee:      "RIGHT_KNEE",
	LeftAnkle:      "LEFT_ANKLE",
	RightAnkle:     "RIGHT_ANKLE",
	LeftHeel:       "LEFT_HEEL",
	RightHeel:      "RIGHT_HEEL",
	LeftFootIndex:  "LEFT_FOOT_INDEX",
	RightFootIndex: "RIGHT_FOOT_INDEX",
}

var jointsByName = func() map[string]Joint {
	m := make(map[string]Joint, JointCount)
	for j := Joint(0); j < JointCount; j++ {
		m[jointNames[j]] = j
	}
	return m
}()

// String returns the MediaPipe name for the joint, e.g. "LEFT_SHOULDER".
func (j Joint) String() string {
	if j < 0 || j >= JointCount {
		return "UNKNOWN_JOINT"
	}
	return jointNames[j]
}

// JointFromName resolves a MediaPipe landmark name to its Joint.
func JointFromName(name string) (Joint, bool) {
	j, ok := jointsByName[name]
	return j, ok
}

// Landmark is one detected 3D body point. X and Y are normalised image
// coordinates, Z is a depth proxy, Visibility is the detector's confidence
// in [0,1]. Immutable once produced.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// LandmarkSet holds one frame's landmarks, indexed by Joint. A nil
// *LandmarkSet models a frame where no body was detected.
type LandmarkSet struct {
	Points [JointCount]Landmark
}

// AngleDef names the angle at joint B formed by the rays B->A and B->C.
type AngleDef struct {
	Name    string
	A, B, C Joint
}

// AngleDefs is the canonical set of eight tracked joint angles: both elbows,
// shoulders, hips, and knees. Fixed, process-wide configuration.
var AngleDefs = []AngleDef{
	{"LEFT_ELBOW_ANGLE", LeftShoulder, LeftElbow, LeftWrist},
	{"RIGHT_ELBOW_ANGLE", RightShoulder, RightElbow, RightWrist},
	{"LEFT_SHOULDER_ANGLE", LeftElbow, LeftShoulder, LeftHip},
	{"RIGHT_SHOULDER_ANGLE", RightElbow, RightShoulder, RightHip},
	{"LEFT_HIP_ANGLE", LeftShoulder, LeftHip, LeftKnee},
	{"RIGHT_HIP_ANGLE", RightShoulder, RightHip, RightKnee},
	{"LEFT_KNEE_ANGLE", LeftHip, LeftKnee, LeftAnkle},
	{"RIGHT_KNEE_ANGLE", RightHip, RightKnee, RightAnkle},
}

// orderedDefs is AngleDefs sorted by name. The sort fixes the layout of the
// angle vectors fed to the cosine similarity, so student and master vectors
// always line up component by component.
var orderedDefs = func() []AngleDef {
	defs := make([]AngleDef, len(AngleDefs))
	copy(defs, AngleDefs)
	sort.Slice(defs, func(i, k int) bool { return defs[i].Name < defs[k].Name })
	return defs
}()

// displayNames maps internal angle names to the labels shown in feedback
// sentences and report tables.
var displayNames = map[string]string{
	"LEFT_ELBOW_ANGLE":     "Left Elbow Angle",
	"RIGHT_ELBOW_ANGLE":    "Right Elbow Angle",
	"LEFT_SHOULDER_ANGLE":  "Left Shoulder Angle",
	"RIGHT_SHOULDER_ANGLE": "Right Shoulder Angle",
	"LEFT_HIP_ANGLE":       "Left Hip Angle",
	"RIGHT_HIP_ANGLE":      "Right Hip Angle",
	"LEFT_KNEE_ANGLE":      "Left Knee Angle",
	"RIGHT_KNEE_ANGLE":     "Right Knee Angle",
}

// DisplayName returns the human-readable label for an internal angle name.
// Unknown names are returned unchanged.
func DisplayName(angleName string) string {
	if label, ok := displayNames[angleName]; ok {
		return label
	}
	return angleName
}
