// Package mocks 提供测试用的协作方模拟实现
//
// 所有 mock 都遵循同一约定：
//   - 字段可直接读写，用于预设状态和断言结果
//   - XxxFunc 字段可覆盖对应方法的默认行为
//   - 默认行为是最小可用实现（内存存储、直通读写）
//
// 本包仅供测试使用。
package mocks
