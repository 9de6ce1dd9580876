// mstodo2md exports Microsoft To Do tasks to local markdown files.
//
// It drains the Graph To Do lists collection, fetches every task of every
// list, and writes one markdown file per task under an output folder:
//
//	# Export everything
//	mstodo2md migrate --source-token TOKEN --output ./out
//
//	# Leave completed tasks behind
//	mstodo2md migrate --source-token TOKEN --skip-completed
//
//	# Check a token without exporting anything
//	mstodo2md validate --source-token TOKEN
package main

func main() {
	Execute()
}
