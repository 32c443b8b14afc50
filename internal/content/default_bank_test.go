package content

import "testing"

func TestDefaultBankIsValid(t *testing.T) {
	bank := DefaultBank()
	if err := bank.Validate(); err != nil {
		t.Fatalf("default bank invalid: %v", err)
	}
	if bank.MaxScore() != 18 {
		t.Fatalf("expected max score 18, got %d", bank.MaxScore())
	}
}

func TestDefaultBankReturnsCopies(t *testing.T) {
	first := DefaultBank()
	first.Questions[0].Text = "changed"
	if DefaultBank().Questions[0].Text == "changed" {
		t.Fatalf("expected independent copies")
	}
}
