package stratum

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/djkazic/stratum-notify/internal/types"
	"github.com/djkazic/stratum-notify/testutil"
)

func envelope(t *testing.T, params interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"id":     nil,
		"method": MethodNotify,
		"params": params,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}

func TestReadNotify_Sample(t *testing.T) {
	n, ok := ReadNotify([]byte(testutil.SampleNotifyJSON()))
	if !ok {
		t.Fatal("ReadNotify rejected a valid notify")
	}
	if n.ID != nil || n.Method != MethodNotify {
		t.Errorf("envelope = %v/%q, want null/%q", n.ID, n.Method, MethodNotify)
	}

	jobID, _ := n.Params.JobID()
	if jobID != "4f" {
		t.Errorf("JobID = %q, want 4f", jobID)
	}
	branch, err := n.Params.MerkleBranch()
	if err != nil || len(branch) != 2 {
		t.Fatalf("MerkleBranch = %v, %v; want 2 entries", branch, err)
	}
	if branch[0].String() != testutil.SampleBranchHash {
		t.Errorf("branch[0] = %s, want %s", branch[0], testutil.SampleBranchHash)
	}
	cb2, _ := n.Params.Coinbase2()
	if len(cb2) != 13 {
		t.Errorf("Coinbase2 length = %d, want 13", len(cb2))
	}
	clean, _ := n.Params.Clean()
	if clean {
		t.Error("Clean = true, want false")
	}
}

func TestReadNotify_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `mining.notify`},
		{"array", `[1,2,3]`},
		{"null", `null`},
		{"missing id", `{"method":"mining.notify","params":[]}`},
		{"non-null id", strings.Replace(testutil.SampleNotifyJSON(), `"id":null`, `"id":1`, 1)},
		{"other method", strings.Replace(testutil.SampleNotifyJSON(), MethodNotify, "mining.set_difficulty", 1)},
		{"method not string", `{"id":null,"method":5,"params":[]}`},
		{"params object", `{"id":null,"method":"mining.notify","params":{}}`},
		{"empty params", `{"id":null,"method":"mining.notify","params":[]}`},
		{"clean as string", strings.Replace(testutil.SampleNotifyJSON(), `false]}`, `"false"]}`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n, ok := ReadNotify([]byte(tt.raw)); ok {
				t.Errorf("ReadNotify accepted %s: %+v", tt.raw, n)
			}
		})
	}
}

func TestReadNotify_ValidityEquivalence(t *testing.T) {
	cases := []NotifyParams{
		sampleParams(),
		sampleParams()[:8],
		withField(notifyPrevHash, testutil.SamplePrevHash[:63]),
		withField(notifyPrevHash, "aB"+testutil.SamplePrevHash[2:]),
		withField(notifyMerkleBranch, []interface{}{testutil.SampleBranchHash}),
		withField(notifyMerkleBranch, []interface{}{testutil.SampleBranchHash + "0"}),
		withField(notifyVersion, "2"),
		withField(notifyClean, "true"),
		withField(notifyJobID, 12.0),
	}

	for i, p := range cases {
		_, ok := ReadNotify(envelope(t, p))
		if ok != ValidNotifyParams(p) {
			t.Errorf("case %d: ReadNotify ok = %v, ValidNotifyParams = %v", i, ok, ValidNotifyParams(p))
		}
	}
}

func TestValidNotify(t *testing.T) {
	good := &Notification{ID: nil, Method: MethodNotify, Params: testutil.SampleNotifyParams()}
	if !ValidNotify(good) {
		t.Error("ValidNotify rejected a valid notification")
	}

	wrongMethod := &Notification{ID: nil, Method: "mining.submit", Params: testutil.SampleNotifyParams()}
	if ValidNotify(wrongMethod) {
		t.Error("ValidNotify accepted another method")
	}

	withID := &Notification{ID: 1, Method: MethodNotify, Params: testutil.SampleNotifyParams()}
	if ValidNotify(withID) {
		t.Error("ValidNotify accepted a non-null id")
	}

	bad := &Notification{ID: nil, Method: MethodNotify, Params: withField(notifyClean, "true")}
	if ValidNotify(bad) {
		t.Error("ValidNotify accepted a string clean flag")
	}

	if ValidNotify(nil) {
		t.Error("ValidNotify accepted nil")
	}
}

func TestMakeNotify_ReadBack(t *testing.T) {
	prev := testutil.HashFromHex(testutil.SamplePrevHash)
	branch := []types.Digest32{testutil.HashFromHex(testutil.SampleBranchHash)}
	n := MakeNotify("job-9", prev, []byte{0x01}, []byte{0x02}, branch, 0x20000000, types.DifficultyFromBits(0x1d00ffff), 1700000000, true)

	if !ValidNotify(n.Notification()) {
		t.Fatal("MakeNotify produced an invalid notification")
	}

	raw, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(raw), `{"id":null,"method":"mining.notify","params":["job-9",`) {
		t.Errorf("unexpected wire form: %s", raw)
	}

	got, ok := ReadNotify(raw)
	if !ok {
		t.Fatalf("ReadNotify rejected MakeNotify output: %s", raw)
	}
	gotPrev, err := got.Params.PrevHash()
	if err != nil || gotPrev != prev {
		t.Errorf("PrevHash = %s, %v; want %s", gotPrev, err, prev)
	}
	gotBranch, _ := got.Params.MerkleBranch()
	if len(gotBranch) != 1 || gotBranch[0] != branch[0] {
		t.Errorf("MerkleBranch = %v, want %v", gotBranch, branch)
	}
}

func TestReadNotification(t *testing.T) {
	n, ok := ReadNotification([]byte(`{"id":null,"method":"mining.set_difficulty","params":[1024]}`))
	if !ok {
		t.Fatal("ReadNotification rejected a generic notification")
	}
	if n.Method != "mining.set_difficulty" || len(n.Params) != 1 {
		t.Errorf("got %+v", n)
	}

	if _, ok := ReadNotification([]byte(`{"id":null,"method":"","params":[]}`)); ok {
		t.Error("ReadNotification accepted an empty method")
	}
	if _, ok := ReadNotification([]byte(`{"id":null,"method":"x"}`)); ok {
		t.Error("ReadNotification accepted missing params")
	}
}
