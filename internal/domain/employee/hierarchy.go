package employee

import "talentcrm/internal/model"

// createsCycle reports whether making managerID the manager of employeeID
// closes a loop. The walk is bounded by the number of employees so a cycle
// already present in stored data cannot trap it.
func createsCycle(employees []model.Employee, employeeID, managerID int64) bool {
	if managerID == 0 {
		return false
	}
	if managerID == employeeID {
		return true
	}
	parent := make(map[int64]int64, len(employees))
	for _, e := range employees {
		if _, ok := parent[e.EmployeeID]; !ok {
			parent[e.EmployeeID] = e.ManagerID
		}
	}
	current := managerID
	for steps := 0; steps <= len(employees); steps++ {
		next, ok := parent[current]
		if !ok || next == 0 {
			return false
		}
		if next == employeeID {
			return true
		}
		current = next
	}
	return false
}

// subordinates walks the reporting tree below rootID breadth first.
func subordinates(employees []model.Employee, rootID int64) []model.Employee {
	children := map[int64][]model.Employee{}
	for _, e := range employees {
		children[e.ManagerID] = append(children[e.ManagerID], e)
	}
	seen := map[int64]bool{rootID: true}
	out := []model.Employee{}
	queue := []int64{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if seen[child.EmployeeID] {
				continue
			}
			seen[child.EmployeeID] = true
			out = append(out, child)
			queue = append(queue, child.EmployeeID)
		}
	}
	return out
}
