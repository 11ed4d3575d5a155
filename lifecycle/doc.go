// Package lifecycle は1プレイ分の進行 (アイドル → プレイ中 → 終了) を管理します
//
// 状態遷移
//
//	Idle    --Start-->            Playing
//	Playing --Flag/Unflag-->      Playing
//	Playing --Open/OpenAdjacent--> Playing | Ended
//	Playing --Reset-->            Idle
//	Ended   --Reset-->            Idle
//
// 上記以外の組み合わせは ErrIllegalIntent で拒否され、Session は変わりません。
// プレイ中の操作のあとには毎回ガードを評価します。地雷を開けていれば負け、
// そうでなく地雷以外の全マスが開いていれば勝ちで、どちらも Ended へ遷移します。
// 勝ち負けは Ended の中で BombWasOpened により区別します。
//
// Transition は Session を値として受け取って新しい Session を返す純粋な関数で、
// 受け取った Session の盤面には触りません。Controller はそれを包んで
// 「1つの進行中ゲーム」を持ち、呼び出しごとに Snapshot を値で返します。
package lifecycle
