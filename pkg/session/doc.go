/*
Package session implements session management and persistence orchestration.

Every mutation goes through Manager.Update, which performs the read, the guard and the
write as one atomic step per session: a process-local lock serializes callers in the
same replica, an optional DistributedLocker serializes replicas, and the store's
compare-and-swap Save catches anything that slipped past both.
*/
package session
