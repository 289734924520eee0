package token

import "testing"

func TestIssueDeterministic(t *testing.T) {
	id := "68498a3fb21c8a52f0a11234"
	if Issue(id) != Issue(id) {
		t.Fatal("same id must yield the same token")
	}
}

func TestIssueDistinctPerID(t *testing.T) {
	a := Issue("68498a3fb21c8a52f0a11234")
	b := Issue("68498a3fb21c8a52f0a15678")
	if a == b {
		t.Fatal("different ids must yield different tokens")
	}
}

func TestVerify(t *testing.T) {
	id := "68498a3fb21c8a52f0a11234"
	other := "68498a3fb21c8a52f0a15678"

	if !Verify(id, Issue(id)) {
		t.Fatal("issued token must verify for its own id")
	}
	if Verify(id, "bm90LWEtdG9rZW4") {
		t.Fatal("arbitrary token must not verify")
	}
	if Verify(id, Issue(other)) {
		t.Fatal("token issued for another id must not verify")
	}
	if Verify(id, "") {
		t.Fatal("empty token must not verify")
	}
}
