// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"sync"
	"testing"
)

const testHashKey = "test-secret-key"

func TestSigner_SumMatchesHMAC(t *testing.T) {
	signer := NewSigner(testHashKey)
	data := []byte(`{"resolution":"local_wins"}`)

	sum1 := signer.Sum(data)
	sum2 := signer.Sum(data)

	if !bytes.Equal(sum1, sum2) {
		t.Fatal("hash must be deterministic for the same input")
	}

	h := hmac.New(sha256.New, []byte(testHashKey))
	h.Write(data)
	if !bytes.Equal(sum1, h.Sum(nil)) {
		t.Fatalf("unexpected hash value\nwant: %x\ngot:  %x", h.Sum(nil), sum1)
	}
}

func TestSigner_SignAndVerify(t *testing.T) {
	signer := NewSigner(testHashKey)
	body := []byte(`{"tables":["catalog_items"]}`)

	sig := signer.Sign(body)

	if !signer.Verify(body, sig) {
		t.Fatal("expected signature to verify")
	}
	if signer.Verify([]byte(`{"tables":[]}`), sig) {
		t.Fatal("signature must not verify a different body")
	}
	if signer.Verify(body, "not-hex") {
		t.Fatal("malformed signature must not verify")
	}
}

func TestSigner_DifferentKeys(t *testing.T) {
	body := []byte("payload")

	if NewSigner("key-one").Sign(body) == NewSigner("key-two").Sign(body) {
		t.Error("different keys must produce different hashes for the same payload")
	}
}

func TestSigner_ConcurrentUse(t *testing.T) {
	signer := NewSigner(testHashKey)
	want := signer.Sign([]byte("shared"))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := signer.Sign([]byte("shared")); got != want {
				t.Errorf("concurrent sign mismatch: %s != %s", got, want)
			}
		}()
	}
	wg.Wait()
}
