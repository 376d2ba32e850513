package validator

// Answer payloads are stored inline on the answer row; cap them well below
// anything the database would have to TOAST.
const MaxAnswerBytes int = 64 * 1024

func ValidateAnswerSize(size int) bool {
	return size <= MaxAnswerBytes
}
