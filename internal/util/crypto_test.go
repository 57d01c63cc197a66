package util

import (
	"strings"
	"testing"
)

// ============ 随机字符串测试 ============

func TestRandomString(t *testing.T) {
	str, err := RandomString(32)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if len(str) != 32 {
		t.Errorf("长度错误: 期望32，实际%d", len(str))
	}

	str2, _ := RandomString(32)
	if str == str2 {
		t.Error("应生成不同的随机字符串")
	}

	if _, err := RandomString(0); err == nil {
		t.Error("长度0应返回错误")
	}
	if _, err := RandomString(-5); err == nil {
		t.Error("负数长度应返回错误")
	}
}

// ============ AES 加密测试 ============

func TestEncryptDecryptAES(t *testing.T) {
	key := "test-encryption-key"

	testCases := []string{
		"Hello World",
		"中文测试",
		"",
		"Special!@#$%^&*()",
		strings.Repeat("A", 1000),
	}

	for _, plaintext := range testCases {
		encrypted, err := EncryptAES(key, []byte(plaintext))
		if err != nil {
			t.Fatalf("加密失败 '%s': %v", plaintext, err)
		}

		decrypted, err := DecryptAES(key, encrypted)
		if err != nil {
			t.Fatalf("解密失败 '%s': %v", plaintext, err)
		}

		if string(decrypted) != plaintext {
			t.Errorf("数据不匹配\n期望: %s\n实际: %s", plaintext, string(decrypted))
		}
	}
}

func TestEncryptAES_DifferentKeys(t *testing.T) {
	plaintext := []byte("Secret Data")

	encrypted1, _ := EncryptAES("key1", plaintext)
	encrypted2, _ := EncryptAES("key2", plaintext)

	if string(encrypted1) == string(encrypted2) {
		t.Error("不同密钥应生成不同密文")
	}
}

func TestDecryptAES_WrongKey(t *testing.T) {
	encrypted, _ := EncryptAES("correct-key", []byte("Data"))

	if _, err := DecryptAES("wrong-key", encrypted); err == nil {
		t.Error("错误密钥应解密失败")
	}
}

func TestDecryptAES_InvalidData(t *testing.T) {
	key := "test-key"

	if _, err := DecryptAES(key, []byte{1, 2, 3}); err == nil {
		t.Error("过短数据应返回错误")
	}
	if _, err := DecryptAES(key, []byte{}); err == nil {
		t.Error("空数据应返回错误")
	}
}

func TestDeriveKey_Stable(t *testing.T) {
	a := deriveKey("kitchen")
	b := deriveKey("kitchen")
	if len(a) != 32 {
		t.Fatalf("key length = %d, want 32", len(a))
	}
	if string(a) != string(b) {
		t.Error("同一配置应派生出相同的 key，否则旧备份无法解密")
	}
}

// ============ 字段加密测试（审计日志） ============

func TestEncryptField_RoundTrip(t *testing.T) {
	key := "audit-key"
	plain := "POST /api/menu/1/sell"

	enc, err := EncryptField(key, plain)
	if err != nil {
		t.Fatalf("EncryptField error = %v", err)
	}
	if enc == plain {
		t.Fatal("密文不应等于明文")
	}
	if got := DecryptField(key, enc); got != plain {
		t.Errorf("DecryptField() = %q, want %q", got, plain)
	}
}

func TestEncryptField_NoKey(t *testing.T) {
	enc, err := EncryptField("", "plain text")
	if err != nil {
		t.Fatalf("EncryptField error = %v", err)
	}
	if enc != "plain text" {
		t.Errorf("没有 key 时应原样返回, got %q", enc)
	}
}

func TestDecryptField_Fallback(t *testing.T) {
	// 非 base64 或解密失败时返回原值
	for _, in := range []string{"not base64 !!", "aGVsbG8="} {
		if got := DecryptField("key", in); got != in {
			t.Errorf("DecryptField(%q) = %q, want unchanged", in, got)
		}
	}
}

// ============ 性能测试 ============

func BenchmarkEncryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		EncryptAES(key, data)
	}
}

func BenchmarkDecryptAES(b *testing.B) {
	key := "bench-key"
	data := []byte("Benchmark data")
	encrypted, _ := EncryptAES(key, data)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecryptAES(key, encrypted)
	}
}
