package types

// VideoMetadata describes the decoded clip the frame observations came from.
type VideoMetadata struct {
	FPS        float64 `json:"fps"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	FrameCount int     `json:"frame_count"`
	Duration   float64 `json:"duration_seconds"`
}

// FrameObservation is the per-frame output of the external landmark model.
// Scores are already in [0,1]; detection flags tell which scores are valid.
type FrameObservation struct {
	EyeContact   float64 `json:"eye_contact"`
	Posture      float64 `json:"posture"`
	Expression   float64 `json:"expression"`
	FaceDetected bool    `json:"face_detected"`
	PoseDetected bool    `json:"pose_detected"`
}

// AudioMeasurements are the raw prosody numbers extracted from the audio
// track. Units are raw (BPM, Hz, RMS); normalization happens in the provider.
type AudioMeasurements struct {
	TempoBPM      float64 `json:"tempo_bpm"`
	PitchStdHz    float64 `json:"pitch_std_hz"`
	VolumeRMSStd  float64 `json:"volume_rms_std"`
	MFCCVariance  float64 `json:"mfcc_variance"`
	SpeechSeconds float64 `json:"speech_seconds"`
	TotalSeconds  float64 `json:"total_seconds"`
	PauseCount    int     `json:"pause_count"`
}

// TranscriptChunk is one timestamped segment from the transcription model.
type TranscriptChunk struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// EvaluateRequest carries everything the upstream perception models produced
// for one candidate clip. Any block may be missing; the affected modality
// degrades to a zero score instead of failing the request.
type EvaluateRequest struct {
	CandidateName    string             `json:"candidate_name" binding:"required"`
	VideoPath        string             `json:"video_path"`
	JobKeywords      []string           `json:"job_keywords"`
	JobDescription   string             `json:"job_description"`
	Transcript       string             `json:"transcript"`
	TranscriptChunks []TranscriptChunk  `json:"transcript_chunks"`
	Metadata         *VideoMetadata     `json:"metadata"`
	Frames           []FrameObservation `json:"frames"`
	Audio            *AudioMeasurements `json:"audio"`
}
